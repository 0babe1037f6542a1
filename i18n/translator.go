package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message ("expected",
// "received", "tag").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":         "expected {expected}, received {received}",
		"required":             "required",
		"invalid_enum_value":   "invalid enum value, expected {expected}, received {received}",
		"invalid_format":       "invalid {expected}",
		"too_small":            "must be {expected}",
		"too_big":              "must be {expected}",
		"unrecognized_variant": "unrecognized variant, expected {expected}",
		"unknown_key":          "unknown key",
		"duplicate_key":        "duplicate key",
		"parse_error":          "parse error",
		"truncated":            "input exceeds the size limit",
	},
	"vi": {
		"invalid_type":         "kiểu không hợp lệ, cần {expected}, nhận {received}",
		"required":             "bắt buộc",
		"invalid_enum_value":   "giá trị không hợp lệ, cần {expected}, nhận {received}",
		"invalid_format":       "định dạng {expected} không hợp lệ",
		"too_small":            "phải {expected}",
		"too_big":              "phải {expected}",
		"unrecognized_variant": "biến thể không xác định, cần {expected}",
		"unknown_key":          "khóa không xác định",
		"duplicate_key":        "khóa bị trùng",
		"parse_error":          "lỗi phân tích cú pháp",
		"truncated":            "dữ liệu vượt quá giới hạn kích thước",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if !strings.Contains(msg, "{") {
		return msg
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	// drop placeholders that had no data
	for _, k := range []string{"expected", "received", "tag"} {
		msg = strings.ReplaceAll(msg, "{"+k+"}", "?")
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"vi").
// Unknown languages fall back to English.
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
