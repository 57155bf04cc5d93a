package i18n

var japanese = map[string]string{
	"title":    "家系図 (MVP)",
	"persons":  "👤 個人",
	"families": "👪 家族",
	"events":   "📅 イベント",
	"settings": "⚙ 設定",

	"save":    "保存",
	"load":    "読込",
	"male":    "男性",
	"female":  "女性",
	"unknown": "不明",

	"manage_families": "家族管理",
	"new_event":       "新規イベント",

	"tooltip_name":     "名前",
	"tooltip_birth":    "生年月日",
	"tooltip_death":    "没年月日",
	"tooltip_age":      "歳",
	"tooltip_died_at":  "享年",
	"tooltip_deceased": "死亡",
	"tooltip_yes":      "はい",
	"tooltip_memo":     "メモ",
}
