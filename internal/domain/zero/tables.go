package zero

// Tables are indexed [left][right] over Zero, NonZero, Unknown. Boolean
// results use NonZero for true and Zero for false.

var addTable = [3][3]Value{
	{Zero, NonZero, Unknown},
	{NonZero, Unknown, Unknown},
	{Unknown, Unknown, Unknown},
}

var mulTable = [3][3]Value{
	{Zero, Zero, Zero},
	{Zero, Unknown, Unknown},
	{Zero, Unknown, Unknown},
}

var shiftTable = [3][3]Value{
	{Zero, Zero, Zero},
	{NonZero, Unknown, Unknown},
	{Unknown, Unknown, Unknown},
}

var andTable = [3][3]Value{
	{Zero, Zero, Zero},
	{Zero, Unknown, Unknown},
	{Zero, Unknown, Unknown},
}

var orTable = [3][3]Value{
	{Zero, NonZero, Unknown},
	{NonZero, NonZero, NonZero},
	{Unknown, NonZero, Unknown},
}

var xorTable = [3][3]Value{
	{Zero, NonZero, Unknown},
	{NonZero, Unknown, Unknown},
	{Unknown, Unknown, Unknown},
}

var eqTable = [3][3]Value{
	{NonZero, Zero, Unknown},
	{Zero, Unknown, Unknown},
	{Unknown, Unknown, Unknown},
}

var neTable = [3][3]Value{
	{Zero, NonZero, Unknown},
	{NonZero, Unknown, Unknown},
	{Unknown, Unknown, Unknown},
}

var ugtTable = [3][3]Value{
	{Zero, Zero, Zero},
	{NonZero, Unknown, Unknown},
	{Unknown, Unknown, Unknown},
}

var ugeTable = [3][3]Value{
	{NonZero, Zero, Unknown},
	{NonZero, Unknown, Unknown},
	{NonZero, Unknown, Unknown},
}

var sgtTable = [3][3]Value{
	{Zero, Unknown, Unknown},
	{Unknown, Unknown, Unknown},
	{Unknown, Unknown, Unknown},
}

var sgeTable = [3][3]Value{
	{NonZero, Unknown, Unknown},
	{Unknown, Unknown, Unknown},
	{Unknown, Unknown, Unknown},
}
