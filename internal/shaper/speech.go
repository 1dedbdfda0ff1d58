package shaper

// SpeechRules rewrite symbols, units and acronyms into spoken form.
// Currency and percentages run before the unit and acronym tables.
var SpeechRules = []Rule{
	NewRule("currency_scale", `\$(\d[\d,]*(?:\.\d+)?)\s*(trillion|billion|million|thousand)\b`, "${1} ${2} dollars"),
	NewRule("currency_billions", `\$(\d[\d,]*(?:\.\d+)?)\s*B\b`, "${1} billion dollars"),
	NewRule("currency_millions", `\$(\d[\d,]*(?:\.\d+)?)\s*M\b`, "${1} million dollars"),
	NewRule("currency", `\$(\d[\d,]*(?:\.\d+)?)`, "${1} dollars"),
	NewRule("cents", `(\d)\s*¢`, "${1} cents"),
	NewRule("percent", `(\d)\s*%`, "${1} percent"),

	NewRule("terawatt_hours", `\bTWh\b`, "terawatt hours"),
	NewRule("gigawatt_hours", `\bGWh\b`, "gigawatt hours"),
	NewRule("megawatt_hours", `\bMWh\b`, "megawatt hours"),
	NewRule("kilowatt_hours", `\bkWh\b`, "kilowatt hours"),
	NewRule("gigawatts", `\bGW\b`, "gigawatts"),
	NewRule("megawatts", `\bMW\b`, "megawatts"),
	NewRule("kilowatts", `\bkW\b`, "kilowatts"),

	NewRule("hydro_quebec_accent", `Hydro-Québec`, "Hydro-Quebec"),
	NewRule("cflco", `\bCF\(L\)Co\b|\bCFLCo\b`, "Churchill Falls Labrador Corporation"),
	NewRule("mou", `\bMOU\b`, "M-O-U"),
	NewRule("nl", `\bNL\b`, "Newfoundland and Labrador"),
	NewRule("hq", `\bHQ\b`, "Hydro-Quebec"),
	NewRule("cf", `\bCF\b`, "Churchill Falls"),
	NewRule("npv", `\bNPV\b`, "net present value"),

	NewRule("for_example", `\be\.g\.,?`, "for example,"),
	NewRule("that_is", `\bi\.e\.,?`, "that is,"),
	NewRule("et_cetera", `\betc\.`, "et cetera"),
	NewRule("versus", `\bvs\.?(\s)`, "versus${1}"),
	NewRule("approximately", `\bapprox\.`, "approximately"),
	NewRule("doctor", `\bDr\.`, "Doctor"),
}

// ExpandForSpeech rewrites text for a TTS engine.
func ExpandForSpeech(text string) string {
	return Apply(text, SpeechRules)
}
