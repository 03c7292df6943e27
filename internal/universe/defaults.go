package universe

// Built-in symbol lists. The full lists drive the market scanner; the
// subsets keep per-symbol download features at a workable size.

var nyseFull = []string{
	"AAL", "AAP", "AAPL", "ABBV", "ABEV", "ABNB", "ABT", "ACN",
	"ACWI", "ADBE", "ADP", "AEM", "AI", "AIG", "ALAB", "AMAT",
	"AMD", "AMX", "AMZN", "ARKK", "ARM", "ASML", "ASTS", "AVGO",
	"AXP", "AZN", "BA", "BABA", "BAK", "BB", "BBD", "BIDU", "BIIB",
	"BIOX", "BITF", "BK", "BKNG", "BKR", "BMNR", "BRKB", "BX",
	"C", "CAAP", "CAH", "CAT", "CDE", "CEG", "CIBR", "CL", "CLS",
	"COIN", "COPX", "COST", "CRM", "CRWV", "CSCO", "CVS", "CVX", "CX",
	"DAL", "DD", "DE", "DECK", "DEO", "DHR", "DIA", "DOCU", "DOW",
	"EA", "EBAY", "ECL", "EEM", "EFA", "EFX", "EQNR", "ESGU",
	"ETHA", "ETSY", "EWZ", "F", "FDX", "FNMA", "FSLR", "FXI",
	"GDX", "GE", "GFI", "GILD", "GLD", "GLOB", "GLW", "GM",
	"GOOGL", "GPRK", "GRMN", "GS", "GT", "HAL", "HD", "HL",
	"HMC", "HMY", "HOG", "HON", "HOOD", "HPQ", "HSBC", "HSY",
	"HUT", "HWM", "IBB", "IBIT", "IBM", "IBN", "IEMG", "IEUR",
	"IFF", "ILF", "INFY", "INTC", "IP", "IREN", "ISRG", "ITA",
	"ITUB", "IVE", "IVV", "IVW", "IWM", "JD", "JMIA", "JNJ",
	"JOYY", "JPM", "KEP", "KMB", "KO", "LAC", "LAR", "LLY",
	"LMT", "LRCX", "LVS", "MA", "MCD", "MDLZ", "MDT", "MELI",
	"META", "MFG", "MMM", "MO", "MOS", "MRK", "MRNA", "MRVL",
	"MSFT", "MSI", "MSTR", "MU", "MUFG", "MUX", "NEM", "NFLX",
	"NG", "NIO", "NKE", "NOW", "NTES", "NU", "NUE", "NVDA",
	"NVS", "NXE", "OKLO", "ORCL", "ORLY", "OXY", "PAAS", "PAGS",
	"PANW", "PATH", "PBR", "PCAR", "PDD", "PEP", "PFE", "PG",
	"PINS", "PKS", "PLTR", "PM", "PSQ", "PSX", "PYPL", "QCOM",
	"QQQ", "RACE", "RBLX", "RGTI", "RIO", "RIOT", "RKLB", "ROKU",
	"RTX", "SAN", "SAP", "SATL", "SBUX", "SCCO", "SE", "SH",
	"SHEL", "SHOP", "SID", "SIEGY", "SLB", "SLV", "SMH", "SNAP",
	"SNOW", "SONY", "SPCE", "SPGI", "SPHQ", "SPOT", "SPXL", "SPY",
	"STLA", "STNE", "SUZ", "T", "TCOM", "TD", "TEAM", "TEM",
	"TGT", "TJX", "TM", "TMUS", "TQQQ", "TRIP", "TSLA", "TSM",
	"TTE", "TWLO", "UAL", "UBER", "UL", "UNH", "UNP", "UPST",
	"URA", "URBN", "USB", "USO", "V", "VALE", "VEA", "VIG",
	"VIST", "VRSN", "VST", "VXX", "VZ", "WFC", "WMT", "XLB",
	"XLC", "XLE", "XLF", "XLI", "XLK", "XLP", "XLRE", "XLU",
	"XLV", "XLY", "XOM", "XP", "XPEV", "ZM",
}

var bymaFull = []string{
	"A3.BA", "A3D.BA", "AGRO.BA", "AGROD.BA", "ALUA.BA", "ALUAD.BA",
	"AUSO.BA", "BBAR.BA", "BHIP.BA", "BHIPD.BA", "BMA.BA", "BOLT.BA",
	"BPAT.BA", "BYMA.BA", "CADO.BA", "CAPX.BA", "CARC.BA", "CECO2.BA",
	"CELU.BA", "CEPU.BA", "CEPUD.BA", "CGPA2.BA", "COME.BA", "CRES.BA",
	"CTIO.BA", "CVH.BA", "DGCE.BA", "DGCU2.BA", "ECOG.BA", "ECOGD.BA",
	"EDN.BA", "EDND.BA", "FERR.BA", "FIPL.BA", "GAMI.BA", "GARO.BA",
	"GBAN.BA", "GCDI.BA", "GCLA.BA", "GGAL.BA", "GGALD.BA", "HARG.BA",
	"HAVA.BA", "HSAT.BA", "IEB.BA", "INTR.BA", "INVJ.BA", "IRS2W.BA",
	"IRSA.BA", "IRSAD.BA", "LEDE.BA", "LOMA.BA", "LONG.BA", "METR.BA",
	"MIRG.BA", "MOLA.BA", "MOLI.BA", "MORI.BA", "OEST.BA", "PAMP.BA",
	"PAMPD.BA", "PATA.BA", "RAGH.BA", "RICH.BA", "RIGO.BA", "ROSE.BA",
	"SAMI.BA", "SEMI.BA", "SUPV.BA", "TECO2.BA", "TGN4D.BA", "TGSU2.BA",
	"TRAN.BA", "TXAR.BA", "VALO.BA", "YPFD.BA", "YPFDD.BA",
}

var nyseFundamentals = []string{
	"AAPL", "ABBV", "ABT", "ACN", "ADP", "AIG", "AMD", "AMZN",
	"ASML", "AVGO", "AXP", "BA", "BAC", "BKNG", "BRKB", "C",
	"CAT", "CL", "COIN", "COST", "CRM", "CSCO", "CVS", "CVX",
	"DE", "DHR", "DOW", "EA", "ECL", "EFX", "F", "FDX",
	"GE", "GILD", "GLW", "GM", "GOOGL", "GS", "HAL", "HD",
	"HON", "HPQ", "HSBC", "IBM", "INTC", "ISRG", "ITUB", "JNJ",
	"JPM", "KMB", "KO", "LLY", "LMT", "MA", "MCD", "MDLZ",
	"MDT", "MELI", "META", "MMM", "MO", "MRK", "MRNA", "MSFT",
	"MU", "NEM", "NFLX", "NKE", "NOW", "NVDA", "NVS", "ORCL",
	"OXY", "PANW", "PBR", "PCAR", "PEP", "PFE", "PG", "PLTR",
	"PM", "PYPL", "QCOM", "RIO", "RTX", "SAP", "SBUX", "SCCO",
	"SHEL", "SLB", "SPGI", "SPOT", "T", "TD", "TGT", "TJX",
	"TM", "TMUS", "TSLA", "TSM", "TTE", "UNH", "UNP", "V",
	"VALE", "VZ", "WFC", "WMT", "XOM",
}

var nyseDividends = []string{
	"AAPL", "ABBV", "ABT", "ACN", "ADP", "AIG", "AMZN", "AXP",
	"BA", "BAC", "BBD", "BK", "BKNG", "BRKB", "C", "CAT",
	"CL", "COST", "CRM", "CSCO", "CVS", "CVX", "D", "DD",
	"DE", "DEO", "DHR", "DOW", "ECL", "EFX", "EQNR", "F",
	"FDX", "GE", "GILD", "GLW", "GM", "GOOGL", "GS", "HAL",
	"HD", "HON", "HPQ", "HSBC", "IBM", "INTC", "IP", "ISRG",
	"ITUB", "JNJ", "JPM", "KMB", "KO", "LLY", "LMT", "MA",
	"MCD", "MDLZ", "MDT", "META", "MMM", "MO", "MRK", "MSFT",
	"MU", "NEE", "NEM", "NFLX", "NKE", "NUE", "NVDA", "NVS",
	"ORCL", "OXY", "PBR", "PCAR", "PEP", "PFE", "PG", "PM",
	"PSX", "PYPL", "QCOM", "RIO", "RTX", "SAP", "SBUX", "SCCO",
	"SHEL", "SLB", "SPGI", "SPOT", "T", "TD", "TGT", "TJX",
	"TM", "TMUS", "TSM", "TTE", "UNH", "UNP", "USB", "V",
	"VALE", "VZ", "WFC", "WMT", "XOM",
}

var nysePE = []string{
	"AAPL", "ABBV", "ABT", "ACN", "ADP", "AIG", "AMD", "AMZN", "AVGO",
	"AXP", "BA", "BAC", "BKNG", "BRKB", "C", "CAT", "CL", "COIN",
	"COST", "CRM", "CSCO", "CVS", "CVX", "DD", "DE", "DHR", "DOW",
	"ECL", "EFX", "F", "FDX", "GE", "GILD", "GM", "GOOGL", "GS",
	"HAL", "HD", "HON", "HPQ", "IBM", "INTC", "ISRG", "JNJ", "JPM",
	"KMB", "KO", "LLY", "LMT", "MA", "MCD", "MDLZ", "MDT", "MELI",
	"META", "MMM", "MO", "MRK", "MSFT", "MU", "NEE", "NEM", "NFLX",
	"NKE", "NOW", "NVDA", "NVS", "ORCL", "OXY", "PANW", "PEP",
	"PFE", "PG", "PLTR", "PM", "PYPL", "QCOM", "RTX", "SBUX",
	"SCCO", "SLB", "SNOW", "SPGI", "SPOT", "T", "TGT", "TJX",
	"TMUS", "TSLA", "TSM", "UBER", "UNH", "UNP", "USB", "V",
	"VALE", "VZ", "WFC", "WMT", "XOM",
}

var nysePEG = []string{
	"AAPL", "ABBV", "ABT", "ACN", "ADP", "AIG", "AMD", "AMZN", "AVGO",
	"AXP", "BA", "BAC", "BKNG", "BRKB", "C", "CAT", "CL", "COST",
	"CRM", "CSCO", "CVS", "CVX", "D", "DD", "DE", "DHR", "DOW",
	"ECL", "EFX", "F", "FDX", "GE", "GILD", "GM", "GOOGL", "GS",
	"HAL", "HD", "HON", "HPQ", "IBM", "INTC", "ISRG", "JNJ", "JPM",
	"KMB", "KO", "LLY", "LMT", "MA", "MCD", "MDLZ", "MDT", "MELI",
	"META", "MMM", "MO", "MRK", "MSFT", "MU", "NEE", "NEM", "NFLX",
	"NKE", "NOW", "NVDA", "NVS", "ORCL", "OXY", "PEP", "PFE", "PG",
	"PM", "PYPL", "QCOM", "RTX", "SBUX", "SCCO", "SLB", "SPGI",
	"SPOT", "T", "TGT", "TJX", "TMUS", "TSLA", "TSM", "UNH", "UNP",
	"USB", "V", "VZ", "WFC", "WMT", "XOM",
}

var nyseMultifactor = []string{
	"AAPL", "ABBV", "ABT", "ACN", "ADP", "AMD", "AMZN", "ASML",
	"AVGO", "AXP", "BA", "BAC", "BKNG", "C", "CAT", "CL",
	"COIN", "COST", "CRM", "CSCO", "CVS", "CVX", "DE", "DHR",
	"DOW", "EA", "ECL", "F", "FDX", "GE", "GILD", "GLW",
	"GM", "GOOGL", "GS", "HAL", "HD", "HON", "HPQ", "IBM",
	"INTC", "ISRG", "ITUB", "JNJ", "JPM", "KMB", "KO", "LLY",
	"LMT", "MA", "MCD", "MDLZ", "MDT", "MELI", "META", "MMM",
	"MO", "MRK", "MRNA", "MSFT", "MU", "NEM", "NFLX", "NKE",
	"NOW", "NVDA", "NVS", "ORCL", "OXY", "PANW", "PBR", "PEP",
	"PFE", "PG", "PLTR", "PM", "PYPL", "QCOM", "RIO", "RTX",
	"SAP", "SBUX", "SCCO", "SHEL", "SLB", "SPGI", "SPOT", "T",
	"TD", "TGT", "TJX", "TM", "TMUS", "TSLA", "TSM", "TTE",
	"UNH", "UNP", "V", "VALE", "VZ", "WFC", "WMT", "XOM",
}

// bymaSubset is the liquid BYMA subset shared by fundamentals,
// dividend and multifactor scans.
var bymaSubset = []string{
	"GGAL.BA", "YPFD.BA", "PAMP.BA", "BMA.BA", "CEPU.BA",
	"ALUA.BA", "TXAR.BA", "COME.BA", "TGSU2.BA", "EDN.BA",
	"BBAR.BA", "CRES.BA", "MIRG.BA", "SUPV.BA", "LOMA.BA",
	"CVH.BA", "IRSA.BA", "METR.BA", "TECO2.BA", "VALO.BA",
	"BYMA.BA", "AGRO.BA", "RICH.BA", "SEMI.BA", "MOLI.BA",
	"ROSE.BA", "CARC.BA", "INVJ.BA", "GARO.BA", "HARG.BA",
}

var bymaPE = append(append([]string{}, bymaSubset...),
	"BOLT.BA", "CAPX.BA", "CELU.BA", "DGCU2.BA", "FERR.BA",
	"GCDI.BA", "LONG.BA", "MORI.BA", "SAMI.BA", "TRAN.BA",
)
