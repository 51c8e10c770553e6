package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "min" or "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":    "invalid type",
		"required":        "required",
		"unknown_key":     "unknown key",
		"too_short":       "must contain at least {min} character(s)",
		"too_long":        "must contain at most {max} character(s)",
		"pattern":         "invalid format",
		"invalid_enum":    "invalid option",
		"invalid_literal": "invalid input",
		"parse_error":     "parse error",
		"truncated":       "truncated",
		"invalid_config":  "invalid configuration",
	},
	"ja": {
		"invalid_type":    "型が不正です",
		"required":        "必須項目です",
		"unknown_key":     "未知のキーです",
		"too_short":       "{min}文字以上で入力してください",
		"too_long":        "{max}文字以内で入力してください",
		"pattern":         "形式が不正です",
		"invalid_enum":    "選択肢が不正です",
		"invalid_literal": "入力が不正です",
		"parse_error":     "解析エラー",
		"truncated":       "打ち切られました",
		"invalid_config":  "設定が不正です",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
