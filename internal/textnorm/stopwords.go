package textnorm

// stopwords is the fixed Portuguese stopword list applied by
// ExtractWords. Entries are already accent-folded.
var stopwords = map[string]struct{}{
	"a": {}, "o": {}, "as": {}, "os": {},
	"um": {}, "uma": {}, "uns": {}, "umas": {},
	"de": {}, "do": {}, "da": {}, "dos": {}, "das": {},
	"e": {}, "em": {}, "no": {}, "na": {}, "nos": {}, "nas": {},
	"para": {}, "por": {}, "com": {}, "sem": {}, "ao": {}, "aos": {},
	"que": {}, "como": {}, "ser": {}, "estar": {}, "ter": {}, "fazer": {},
	"nao": {}, "duvida": {}, "duvidas": {}, "pergunta": {}, "perguntas": {},
}

// IsStopword reports whether the (already normalized) token is in the
// stopword list.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
