package token

var keywords = map[string]Kind{
	"int":    KwInt,
	"float":  KwFloat,
	"void":   KwVoid,
	"bool":   KwBool,
	"if":     KwIf,
	"then":   KwThen,
	"else":   KwElse,
	"return": KwReturn,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword возвращает тип и bool, если это ключевое слово.
// Регистр важен: распознаются только lowercase версии.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
