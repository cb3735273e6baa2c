package currency

// entries is the catalog in canonical display order. Symbols are the ones
// shown next to amounts; names are optional and only used for search and
// descriptions.
var entries = []Entry{
	{Code: "AFN", Symbol: "؋", Name: "Afghan Afghani"},
	{Code: "ALL", Symbol: "Lek", Name: "Albanian Lek"},
	{Code: "AMD", Symbol: "դր.", Name: "Armenian Dram"},
	{Code: "ANG", Symbol: "ƒ", Name: "Netherlands Antillean Guilder"},
	{Code: "AOA", Symbol: "Kz", Name: "Angolan Kwanza"},
	{Code: "ARS", Symbol: "$", Name: "Argentine Peso"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "AWG", Symbol: "ƒ", Name: "Aruban Florin"},
	{Code: "AZN", Symbol: "₼", Name: "Azerbaijani Manat"},
	{Code: "BAM", Symbol: "KM", Name: "Bosnia-Herzegovina Convertible Mark"},
	{Code: "BBD", Symbol: "$", Name: "Barbadian Dollar"},
	{Code: "BDT", Symbol: "৳", Name: "Bangladeshi Taka"},
	{Code: "BGN", Symbol: "лв", Name: "Bulgarian Lev"},
	{Code: "BHD", Symbol: ".د.ب", Name: "Bahraini Dinar"},
	{Code: "BIF", Symbol: "FBu", Name: "Burundian Franc"},
	{Code: "BMD", Symbol: "$", Name: "Bermudian Dollar"},
	{Code: "BND", Symbol: "$", Name: "Brunei Dollar"},
	{Code: "BOB", Symbol: "Bs.", Name: "Bolivian Boliviano"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{Code: "BSD", Symbol: "$", Name: "Bahamian Dollar"},
	{Code: "BTN", Symbol: "Nu.", Name: "Bhutanese Ngultrum"},
	{Code: "BWP", Symbol: "P", Name: "Botswana Pula"},
	{Code: "BYN", Symbol: "Br", Name: "Belarusian Ruble"},
	{Code: "BZD", Symbol: "$", Name: "Belize Dollar"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "CDF", Symbol: "Fr", Name: "Congolese Franc"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "CLP", Symbol: "$", Name: "Chilean Peso"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "COP", Symbol: "$", Name: "Colombian Peso"},
	{Code: "CRC", Symbol: "₡", Name: "Costa Rican Colón"},
	{Code: "CUP", Symbol: "$", Name: "Cuban Peso"},
	{Code: "CVE", Symbol: "$", Name: "Cape Verdean Escudo"},
	{Code: "CZK", Symbol: "Kč", Name: "Czech Koruna"},
	{Code: "DJF", Symbol: "Fdj", Name: "Djiboutian Franc"},
	{Code: "DKK", Symbol: "kr", Name: "Danish Krone"},
	{Code: "DOP", Symbol: "RD$", Name: "Dominican Peso"},
	{Code: "DZD", Symbol: "DA", Name: "Algerian Dinar"},
	{Code: "EGP", Symbol: "E£", Name: "Egyptian Pound"},
	{Code: "ERN", Symbol: "Nfk", Name: "Eritrean Nakfa"},
	{Code: "ETB", Symbol: "Br", Name: "Ethiopian Birr"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "FJD", Symbol: "$", Name: "Fijian Dollar"},
	{Code: "FKP", Symbol: "£", Name: "Falkland Islands Pound"},
	{Code: "GBP", Symbol: "£", Name: "British Pound Sterling"},
	{Code: "GEL", Symbol: "₾", Name: "Georgian Lari"},
	{Code: "GGP", Symbol: "£"},
	{Code: "GHS", Symbol: "GH₵", Name: "Ghanaian Cedi"},
	{Code: "GIP", Symbol: "£", Name: "Gibraltar Pound"},
	{Code: "GMD", Symbol: "D", Name: "Gambian Dalasi"},
	{Code: "GNF", Symbol: "Fr", Name: "Guinean Franc"},
	{Code: "GTQ", Symbol: "Q", Name: "Guatemalan Quetzal"},
	{Code: "GYD", Symbol: "$", Name: "Guyanese Dollar"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	{Code: "HNL", Symbol: "L", Name: "Honduran Lempira"},
	{Code: "HRK", Symbol: "kn", Name: "Croatian Kuna"},
	{Code: "HTG", Symbol: "G", Name: "Haitian Gourde"},
	{Code: "HUF", Symbol: "Ft", Name: "Hungarian Forint"},
	{Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah"},
	{Code: "ILS", Symbol: "₪", Name: "Israeli New Shekel"},
	{Code: "IMP", Symbol: "£"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "IQD", Symbol: "ع.د", Name: "Iraqi Dinar"},
	{Code: "IRR", Symbol: "﷼", Name: "Iranian Rial"},
	{Code: "ISK", Symbol: "kr", Name: "Icelandic Króna"},
	{Code: "JEP", Symbol: "£", Name: "Jersey Pound"},
	{Code: "JMD", Symbol: "$", Name: "Jamaican Dollar"},
	{Code: "JOD", Symbol: "JD", Name: "Jordanian Dinar"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "KES", Symbol: "KSh", Name: "Kenyan Shilling"},
	{Code: "KGS", Symbol: "лв", Name: "Kyrgyzstani Som"},
	{Code: "KHR", Symbol: "៛", Name: "Cambodian Riel"},
	{Code: "KMF", Symbol: "Fr", Name: "Comorian Franc"},
	{Code: "KPW", Symbol: "₩", Name: "North Korean Won"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won"},
	{Code: "KWD", Symbol: "KD", Name: "Kuwaiti Dinar"},
	{Code: "KYD", Symbol: "$", Name: "Cayman Islands Dollar"},
	{Code: "KZT", Symbol: "〒", Name: "Kazakhstani Tenge"},
	{Code: "LAK", Symbol: "₭", Name: "Lao Kip"},
	{Code: "LBP", Symbol: "ل.ل", Name: "Lebanese Pound"},
	{Code: "LKR", Symbol: "₨", Name: "Sri Lankan Rupee"},
	{Code: "LRD", Symbol: "$", Name: "Liberian Dollar"},
	{Code: "LSL", Symbol: "L", Name: "Lesotho Loti"},
	{Code: "LTL", Symbol: "LTL", Name: "Lithuanian Litas (historic)"},
	{Code: "LVL", Symbol: "Ls", Name: "Latvian Lats (historic)"},
	{Code: "LYD", Symbol: "ل.د", Name: "Libyan Dinar"},
	{Code: "MAD", Symbol: "د.م.", Name: "Moroccan Dirham"},
	{Code: "MDL", Symbol: "L", Name: "Moldovan Leu"},
	{Code: "MGA", Symbol: "Ar", Name: "Malagasy Ariary"},
	{Code: "MKD", Symbol: "ден", Name: "Macedonian Denar"},
	{Code: "MMK", Symbol: "K", Name: "Myanmar Kyat"},
	{Code: "MNT", Symbol: "₮", Name: "Mongolian Tögrög"},
	{Code: "MOP", Symbol: "P", Name: "Macanese Pataca"},
	{Code: "MRO", Symbol: "UM", Name: "Mauritanian Ouguiya (historic)"},
	{Code: "MUR", Symbol: "₨", Name: "Mauritian Rupee"},
	{Code: "MVR", Symbol: "Rf", Name: "Maldivian Rufiyaa"},
	{Code: "MWK", Symbol: "MK", Name: "Malawian Kwacha"},
	{Code: "MXN", Symbol: "$", Name: "Mexican Peso"},
	{Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit"},
	{Code: "MZN", Symbol: "MTn", Name: "Mozambican Metical"},
	{Code: "NAD", Symbol: "N$", Name: "Namibian Dollar"},
	{Code: "NGN", Symbol: "₦", Name: "Nigerian Naira"},
	{Code: "NIO", Symbol: "C$", Name: "Nicaraguan Córdoba"},
	{Code: "NOK", Symbol: "kr", Name: "Norwegian Krone"},
	{Code: "NPR", Symbol: "₨", Name: "Nepalese Rupee"},
	{Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar"},
	{Code: "OMR", Symbol: "﷼", Name: "Omani Rial"},
	{Code: "PAB", Symbol: "B/.", Name: "Panamanian Balboa"},
	{Code: "PEN", Symbol: "S/.", Name: "Peruvian Sol"},
	{Code: "PGK", Symbol: "K", Name: "Papua New Guinean Kina"},
	{Code: "PHP", Symbol: "₱", Name: "Philippine Peso"},
	{Code: "PKR", Symbol: "₨", Name: "Pakistani Rupee"},
	{Code: "PLN", Symbol: "zł", Name: "Polish Złoty"},
	{Code: "PYG", Symbol: "₲", Name: "Paraguayan Guaraní"},
	{Code: "QAR", Symbol: "﷼", Name: "Qatari Riyal"},
	{Code: "RON", Symbol: "lei", Name: "Romanian Leu"},
	{Code: "RSD", Symbol: "din", Name: "Serbian Dinar"},
	{Code: "RUB", Symbol: "₽", Name: "Russian Ruble"},
	{Code: "RWF", Symbol: "FRw", Name: "Rwandan Franc"},
	{Code: "SAR", Symbol: "﷼", Name: "Saudi Riyal"},
	{Code: "SBD", Symbol: "$", Name: "Solomon Islands Dollar"},
	{Code: "SCR", Symbol: "₨", Name: "Seychellois Rupee"},
	{Code: "SDG", Symbol: "ج.س.", Name: "Sudanese Pound"},
	{Code: "SEK", Symbol: "kr", Name: "Swedish Krona"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "SHP", Symbol: "£", Name: "Saint Helena Pound"},
	{Code: "SLL", Symbol: "Le", Name: "Sierra Leonean Leone"},
	{Code: "SOS", Symbol: "S", Name: "Somali Shilling"},
	{Code: "SRD", Symbol: "$", Name: "Surinamese Dollar"},
	{Code: "STD", Symbol: "Db", Name: "Sao Tome Dobra (historic)"},
	{Code: "SVC", Symbol: "$", Name: "Salvadoran Colón"},
	{Code: "SYP", Symbol: "£S", Name: "Syrian Pound"},
	{Code: "SZL", Symbol: "L", Name: "Swazi Lilangeni"},
	{Code: "THB", Symbol: "฿", Name: "Thai Baht"},
	{Code: "TJS", Symbol: "ЅМ", Name: "Tajikistani Somoni"},
	{Code: "TMT", Symbol: "T", Name: "Turkmenistan Manat"},
	{Code: "TND", Symbol: "د.ت", Name: "Tunisian Dinar"},
	{Code: "TOP", Symbol: "T$", Name: "Tongan Paʻanga"},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira"},
	{Code: "TTD", Symbol: "TT$", Name: "Trinidad and Tobago Dollar"},
	{Code: "TWD", Symbol: "NT$", Name: "New Taiwan Dollar"},
	{Code: "TZS", Symbol: "TSh", Name: "Tanzanian Shilling"},
	{Code: "UAH", Symbol: "₴", Name: "Ukrainian Hryvnia"},
	{Code: "UGX", Symbol: "USh", Name: "Ugandan Shilling"},
	{Code: "USD", Symbol: "$", Name: "United States Dollar"},
	{Code: "UYU", Symbol: "$U", Name: "Uruguayan Peso"},
	{Code: "UZS", Symbol: "soʻm", Name: "Uzbekistan Som"},
	{Code: "VEF", Symbol: "Bs", Name: "Venezuelan Bolívar (historic)"},
	{Code: "VND", Symbol: "₫", Name: "Vietnamese Đồng"},
	{Code: "VUV", Symbol: "Vt", Name: "Vanuatu Vatu"},
	{Code: "WST", Symbol: "T", Name: "Samoan Tala"},
	{Code: "XAF", Symbol: "Fr", Name: "Central African CFA Franc"},
	{Code: "XCD", Symbol: "$", Name: "East Caribbean Dollar"},
	{Code: "XOF", Symbol: "Fr", Name: "West African CFA Franc"},
	{Code: "XPF", Symbol: "Fr", Name: "CFP Franc"},
	{Code: "YER", Symbol: "﷼", Name: "Yemeni Rial"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "ZMW", Symbol: "ZK", Name: "Zambian Kwacha"},
	{Code: "ZWL", Symbol: "Z$", Name: "Zimbabwean Dollar"},
}
