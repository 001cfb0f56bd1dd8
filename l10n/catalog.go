package l10n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// catalog maps en-US format keys to their German rendering.
var catalog = [][2]string{
	{"malformed operand list for decomposition", "fehlerhafte Operandenliste für Zerlegung"},
	{"%v wants %d operands, got %d", "%v erwartet %d Operanden, erhalten %d"},
	{"level not recordable", "Stufe nicht erfassbar"},
	{"register wavelength duplicated", "Register-Wellenlänge doppelt vergeben"},
	{"register name duplicated", "Registername doppelt vergeben"},
	{"level unknown", "Stufe unbekannt"},
	{"class unknown", "Klasse unbekannt"},
	{"profile %v: %v", "Profil %v: %v"},
	{"template invalid", "Vorlage ungültig"},
	{"template level must be native or translated", "Vorlagenstufe muss native oder translated sein"},
	{"decomposition step references unknown template", "Zerlegungsschritt verweist auf unbekannte Vorlage"},
	{"fallback time too small", "Ersatzlaufzeit zu klein"},
	{"wide lane scale must be positive", "Breitenfaktor muss positiv sein"},
	{"value has wrong type", "Wert hat falschen Typ"},
	{"template faster than native baseline", "Vorlage schneller als native Basislinie"},
	{"template set overlap", "Vorlagenmengen überschneiden sich"},
	{"line %d '%v' %v", "Zeile %d '%v' %v"},
	{"'%v' is not a number", "'%v' ist keine Zahl"},
	{"$(%v) is not a valid expression", "$(%v) ist kein gültiger Ausdruck"},
	{".equ syntax", ".equ-Syntax"},
	{".equ duplicated", ".equ doppelt"},
	{".bits syntax", ".bits-Syntax"},
	{"opcode bytes invalid", "Opcode-Bytes ungültig"},
	{"mnemonic missing", "Mnemonic fehlt"},
	{"label duplicated", "Marke doppelt"},
	{"opcode reserved for the fallback", "Opcode für die Ersatzoperation reserviert"},
	{"instruction %d (%v) %v", "Anweisung %d (%v) %v"},
	{"trace record invalid", "Trace-Eintrag ungültig"},
	{"trace row %d %v", "Trace-Zeile %d %v"},
	{"collector closed", "Sammler geschlossen"},
	{"workers must be positive", "Anzahl der Arbeiter muss positiv sein"},
	{"compatibility metrics", "Kompatibilitätsmetriken"},
	{"metric", "Metrik"},
	{"value", "Wert"},
	{"processed", "verarbeitet"},
	{"targets", "Zielanweisungen"},
	{"total time (ps)", "Gesamtzeit (ps)"},
	{"ideal time (ps)", "Idealzeit (ps)"},
	{"average time (ps)", "Durchschnittszeit (ps)"},
	{"efficiency", "Effizienz"},
}

// register installs the catalog into the default message catalog.
func register() {
	for _, entry := range catalog {
		_ = message.SetString(language.AmericanEnglish, entry[0], entry[0])
		_ = message.SetString(language.German, entry[0], entry[1])
	}
}
