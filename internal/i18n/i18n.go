// Package i18n содержит тексты бота на русском и английском.
// Тексты адресуются ключом, параметры подставляются в {фигурные скобки}.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Key: ключ текста.
type Key string

// Поддерживаемые языки
const (
	Russian = "ru"
	English = "en"
)

// Fallback: язык, на который откатываемся при отсутствии перевода.
const Fallback = Russian

var (
	supported = []language.Tag{language.Russian, language.English}
	matcher   = language.NewMatcher(supported)
)

// Match приводит произвольный тег (en-US, RU, english) к поддерживаемому языку.
// Если язык не поддерживается, возвращает "".
func Match(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return ""
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// Normalize: как Match, но неизвестный язык превращается в Fallback.
func Normalize(raw string) string {
	if lang := Match(raw); lang != "" {
		return lang
	}
	return Fallback
}

// Supported возвращает коды поддерживаемых языков.
func Supported() []string {
	return []string{Russian, English}
}

// Text возвращает текст по ключу с подставленными параметрами.
// Нет перевода на lang: берётся русский, нет и его, сам ключ.
func Text(lang string, key Key, params map[string]string) string {
	tpl, ok := catalogs[lang][key]
	if !ok {
		tpl, ok = catalogs[Fallback][key]
	}
	if !ok {
		tpl = string(key)
	}
	if len(params) == 0 {
		return tpl
	}

	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// Button возвращает подпись кнопки для токена.
func Button(lang, token string) string {
	return Text(lang, Key("btn_"+token), nil)
}
