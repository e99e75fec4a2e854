package sign

// Tables are indexed [left][right] in declaration order of Value.

var joinTable = [numValues][numValues]Value{
	Bot: {Bot, Ltz, Gtz, Eqz, Nez, Gez, Lez, Top},
	Ltz: {Ltz, Ltz, Nez, Lez, Nez, Top, Lez, Top},
	Gtz: {Gtz, Nez, Gtz, Gez, Nez, Gez, Top, Top},
	Eqz: {Eqz, Lez, Gez, Eqz, Top, Gez, Lez, Top},
	Nez: {Nez, Nez, Nez, Top, Nez, Top, Top, Top},
	Gez: {Gez, Top, Gez, Gez, Top, Gez, Top, Top},
	Lez: {Lez, Lez, Top, Lez, Top, Top, Lez, Top},
	Top: {Top, Top, Top, Top, Top, Top, Top, Top},
}

var meetTable = [numValues][numValues]Value{
	Bot: {Bot, Bot, Bot, Bot, Bot, Bot, Bot, Bot},
	Ltz: {Bot, Ltz, Bot, Bot, Ltz, Bot, Ltz, Ltz},
	Gtz: {Bot, Bot, Gtz, Bot, Gtz, Gtz, Bot, Gtz},
	Eqz: {Bot, Bot, Bot, Eqz, Bot, Eqz, Eqz, Eqz},
	Nez: {Bot, Ltz, Gtz, Bot, Nez, Gtz, Ltz, Nez},
	Gez: {Bot, Bot, Gtz, Eqz, Gtz, Gez, Eqz, Gez},
	Lez: {Bot, Ltz, Bot, Eqz, Ltz, Eqz, Lez, Lez},
	Top: {Bot, Ltz, Gtz, Eqz, Nez, Gez, Lez, Top},
}

var diffTable = [numValues][numValues]Value{
	Bot: {Bot, Bot, Bot, Bot, Bot, Bot, Bot, Bot},
	Ltz: {Ltz, Bot, Ltz, Ltz, Bot, Ltz, Bot, Bot},
	Gtz: {Gtz, Gtz, Bot, Gtz, Bot, Bot, Gtz, Bot},
	Eqz: {Eqz, Eqz, Eqz, Bot, Eqz, Bot, Bot, Bot},
	Nez: {Nez, Gtz, Ltz, Nez, Bot, Ltz, Gtz, Bot},
	Gez: {Gez, Gez, Eqz, Gtz, Eqz, Bot, Gtz, Bot},
	Lez: {Lez, Eqz, Lez, Ltz, Eqz, Ltz, Bot, Bot},
	Top: {Top, Gez, Lez, Nez, Eqz, Ltz, Gtz, Bot},
}

var addTable = [numValues][numValues]Value{
	Bot: {Bot, Bot, Bot, Bot, Bot, Bot, Bot, Bot},
	Ltz: {Bot, Ltz, Top, Ltz, Top, Top, Ltz, Top},
	Gtz: {Bot, Top, Gtz, Gtz, Top, Gtz, Top, Top},
	Eqz: {Bot, Ltz, Gtz, Eqz, Nez, Gez, Lez, Top},
	Nez: {Bot, Top, Top, Nez, Top, Top, Top, Top},
	Gez: {Bot, Top, Gtz, Gez, Top, Gez, Top, Top},
	Lez: {Bot, Ltz, Top, Lez, Top, Top, Lez, Top},
	Top: {Bot, Top, Top, Top, Top, Top, Top, Top},
}

var mulTable = [numValues][numValues]Value{
	Bot: {Bot, Bot, Bot, Bot, Bot, Bot, Bot, Bot},
	Ltz: {Bot, Gtz, Ltz, Eqz, Nez, Lez, Gez, Top},
	Gtz: {Bot, Ltz, Gtz, Eqz, Nez, Gez, Lez, Top},
	Eqz: {Bot, Eqz, Eqz, Eqz, Eqz, Eqz, Eqz, Eqz},
	Nez: {Bot, Nez, Nez, Eqz, Nez, Top, Top, Top},
	Gez: {Bot, Lez, Gez, Eqz, Top, Gez, Lez, Top},
	Lez: {Bot, Gez, Lez, Eqz, Top, Lez, Gez, Top},
	Top: {Bot, Top, Top, Eqz, Top, Top, Top, Top},
}

var divTable = [numValues][numValues]Value{
	Bot: {Bot, Bot, Bot, Bot, Bot, Bot, Bot, Bot},
	Ltz: {Bot, Gez, Lez, Bot, Top, Lez, Gez, Top},
	Gtz: {Bot, Lez, Gez, Bot, Top, Gez, Lez, Top},
	Eqz: {Bot, Eqz, Eqz, Bot, Eqz, Eqz, Eqz, Eqz},
	Nez: {Bot, Top, Top, Bot, Top, Top, Top, Top},
	Gez: {Bot, Lez, Gez, Bot, Top, Gez, Lez, Top},
	Lez: {Bot, Gez, Lez, Bot, Top, Lez, Gez, Top},
	Top: {Bot, Top, Top, Bot, Top, Top, Top, Top},
}

var remTable = [numValues][numValues]Value{
	Bot: {Bot, Bot, Bot, Bot, Bot, Bot, Bot, Bot},
	Ltz: {Bot, Lez, Lez, Bot, Lez, Lez, Lez, Lez},
	Gtz: {Bot, Gez, Gez, Bot, Gez, Gez, Gez, Gez},
	Eqz: {Bot, Eqz, Eqz, Bot, Eqz, Eqz, Eqz, Eqz},
	Nez: {Bot, Top, Top, Bot, Top, Top, Top, Top},
	Gez: {Bot, Gez, Gez, Bot, Gez, Gez, Gez, Gez},
	Lez: {Bot, Lez, Lez, Bot, Lez, Lez, Lez, Lez},
	Top: {Bot, Top, Top, Bot, Top, Top, Top, Top},
}

var eqTable = [numValues][numValues]Value{
	Bot: {Bot, Bot, Bot, Bot, Bot, Bot, Bot, Bot},
	Ltz: {Bot, Gez, Eqz, Eqz, Gez, Eqz, Gez, Gez},
	Gtz: {Bot, Eqz, Gez, Eqz, Gez, Gez, Eqz, Gez},
	Eqz: {Bot, Eqz, Eqz, Gtz, Eqz, Gez, Gez, Gez},
	Nez: {Bot, Gez, Gez, Eqz, Gez, Gez, Gez, Gez},
	Gez: {Bot, Eqz, Gez, Gez, Gez, Gez, Gez, Gez},
	Lez: {Bot, Gez, Eqz, Gez, Gez, Gez, Gez, Gez},
	Top: {Bot, Gez, Gez, Gez, Gez, Gez, Gez, Gez},
}

var neTable = [numValues][numValues]Value{
	Bot: {Bot, Bot, Bot, Bot, Bot, Bot, Bot, Bot},
	Ltz: {Bot, Gez, Gtz, Gtz, Gez, Gtz, Gez, Gez},
	Gtz: {Bot, Gtz, Gez, Gtz, Gez, Gez, Gtz, Gez},
	Eqz: {Bot, Gtz, Gtz, Eqz, Gtz, Gez, Gez, Gez},
	Nez: {Bot, Gez, Gez, Gtz, Gez, Gez, Gez, Gez},
	Gez: {Bot, Gtz, Gez, Gez, Gez, Gez, Gez, Gez},
	Lez: {Bot, Gez, Gtz, Gez, Gez, Gez, Gez, Gez},
	Top: {Bot, Gez, Gez, Gez, Gez, Gez, Gez, Gez},
}

var ltTable = [numValues][numValues]Value{
	Bot: {Bot, Bot, Bot, Bot, Bot, Bot, Bot, Bot},
	Ltz: {Bot, Gez, Gtz, Gtz, Gez, Gtz, Gez, Gez},
	Gtz: {Bot, Eqz, Gez, Eqz, Gez, Gez, Eqz, Gez},
	Eqz: {Bot, Eqz, Gtz, Eqz, Gez, Gez, Eqz, Gez},
	Nez: {Bot, Gez, Gez, Gez, Gez, Gez, Gez, Gez},
	Gez: {Bot, Eqz, Gez, Eqz, Gez, Gez, Eqz, Gez},
	Lez: {Bot, Gez, Gtz, Gez, Gez, Gez, Gez, Gez},
	Top: {Bot, Gez, Gez, Gez, Gez, Gez, Gez, Gez},
}

var complementTable = [numValues]Value{Top, Gez, Lez, Nez, Eqz, Ltz, Gtz, Bot}

var negTable = [numValues]Value{Bot, Gtz, Ltz, Eqz, Nez, Lez, Gez, Top}
