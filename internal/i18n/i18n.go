// Package i18n provides localized labels for the CLI and home screen.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/verte-zerg/mindgym/internal/locale"
)

// Message keys. Keys double as the English text.
const (
	KeyHomeTitle   = "Brain Training"
	KeyGame        = "Game"
	KeyBest        = "Best"
	KeyAttempts    = "Attempts"
	KeyNoResults   = "No results yet"
	KeySettings    = "Settings"
	KeyLanguage    = "Language"
	KeyHomeHelp    = "s: settings · q: quit"
	KeySettingHelp = "↑/↓: choose · enter: apply · esc: back"
)

var zhHans = map[string]string{
	"Reaction Time":   "反应时间",
	"Sequence Memory": "序列记忆",
	"Aim Trainer":     "瞄准训练",
	"Number Memory":   "数字记忆",
	"Verbal Memory":   "词语记忆",
	"Chimp Test":      "黑猩猩测试",
	"Visual Memory":   "视觉记忆",
	"Schulte Table":   "舒尔特方格",
	KeyHomeTitle:      "大脑训练",
	KeyGame:           "游戏",
	KeyBest:           "最佳",
	KeyAttempts:       "次数",
	KeyNoResults:      "暂无成绩",
	KeySettings:       "设置",
	KeyLanguage:       "语言",
	KeyHomeHelp:       "s: 设置 · q: 退出",
	KeySettingHelp:    "↑/↓: 选择 · enter: 应用 · esc: 返回",
}

var languageNames = map[locale.Locale]string{
	locale.English:           "English",
	locale.SimplifiedChinese: "简体中文",
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	zh := locale.SimplifiedChinese.Tag()
	for key, text := range zhHans {
		if err := b.SetString(language.English, key, escape(key)); err != nil {
			panic(err)
		}
		if err := b.SetString(zh, key, escape(text)); err != nil {
			panic(err)
		}
	}
	return b
}

// Printer returns a message printer for l.
func Printer(l locale.Locale) *message.Printer {
	return message.NewPrinter(l.Tag(), message.Catalog(cat))
}

// Text translates key for l.
func Text(l locale.Locale, key string) string {
	return Translate(Printer(l), key)
}

// Translate looks key up in p's catalog. The key is matched literally and never
// interpreted as a format string; unknown keys render as themselves.
func Translate(p *message.Printer, key string) string {
	return p.Sprintf(message.Key(key, escape(key)))
}

func escape(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

// LanguageName returns the native name of l.
func LanguageName(l locale.Locale) string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return l.String()
}
