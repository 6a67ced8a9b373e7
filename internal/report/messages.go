package report

import (
	"fmt"

	"tgju-tracker/internal/domain"
)

type messageKey string

const (
	msgStarted        messageKey = "started"
	msgMonitoring     messageKey = "monitoring"
	msgInitialHeader  messageKey = "initial_header"
	msgNoPrices       messageKey = "no_prices"
	msgSaved          messageKey = "saved"
	msgChangesAt      messageKey = "changes_at"
	msgNoChanges      messageKey = "no_changes"
	msgPercent        messageKey = "percent"
	msgPrevious       messageKey = "previous"
	msgCurrent        messageKey = "current"
	msgDifference     messageKey = "difference"
	msgFetchError     messageKey = "fetch_error"
	msgRetrying       messageKey = "retrying"
	msgSaveError      messageKey = "save_error"
	msgStateLoadError messageKey = "state_load_error"
	msgCountdown      messageKey = "countdown"
	msgStopped        messageKey = "stopped"
)

var messages = map[messageKey]map[domain.Locale]string{
	msgStarted: {
		domain.LocaleFA: "✅ ربات ردیابی قیمت ارزها و طلا شروع به کار کرد...",
		domain.LocaleEN: "✅ Currency and Gold Price Tracker Bot Started...",
		domain.LocaleZH: "✅ 货币和黄金价格追踪机器人已启动...",
		domain.LocaleRU: "✅ Бот для отслеживания цен на валюту и золото запущен...",
	},
	msgMonitoring: {
		domain.LocaleFA: "در حال رصد تغییرات قیمت...",
		domain.LocaleEN: "Monitoring price changes...",
		domain.LocaleZH: "监控价格变化...",
		domain.LocaleRU: "Отслеживание изменений цен...",
	},
	msgInitialHeader: {
		domain.LocaleFA: "📊 قیمت‌های اولیه",
		domain.LocaleEN: "Initial Prices",
		domain.LocaleZH: "初始价格",
		domain.LocaleRU: "Начальные цены:",
	},
	msgNoPrices: {
		domain.LocaleFA: "هیچ قیمتی از منبع دریافت نشد",
		domain.LocaleEN: "The source reported no tracked prices",
		domain.LocaleZH: "来源未报告任何追踪价格",
		domain.LocaleRU: "Источник не сообщил отслеживаемых цен",
	},
	msgSaved: {
		domain.LocaleFA: "💾 قیمت‌ها ذخیره شدند. منتظر تغییرات باشید...",
		domain.LocaleEN: "💾 Prices saved. Waiting for changes...",
		domain.LocaleZH: "💾 价格已保存。等待变化...",
		domain.LocaleRU: "💾 Цены сохранены. Ожидание изменений...",
	},
	msgChangesAt: {
		domain.LocaleFA: "📌 تغییرات شناسایی شده در %s",
		domain.LocaleEN: "Changes Detected at %s",
		domain.LocaleZH: "在 %s 检测到变化",
		domain.LocaleRU: "Изменения обнаружены в %s",
	},
	msgNoChanges: {
		domain.LocaleFA: "ℹ️ هیچ تغییری در قیمت‌ها شناسایی نشد (%s)",
		domain.LocaleEN: "ℹ️ No changes detected in prices (%s)",
		domain.LocaleZH: "ℹ️ 未检测到价格变化 (%s)",
		domain.LocaleRU: "ℹ️ Изменения цен не обнаружены (%s)",
	},
	msgPercent: {
		domain.LocaleFA: "درصد تغییر",
		domain.LocaleEN: "Change Percent",
		domain.LocaleZH: "变化百分比",
		domain.LocaleRU: "Процент изменения",
	},
	msgPrevious: {
		domain.LocaleFA: "قیمت قبلی",
		domain.LocaleEN: "Previous Price",
		domain.LocaleZH: "前一个价格",
		domain.LocaleRU: "Предыдущая цена",
	},
	msgCurrent: {
		domain.LocaleFA: "قیمت فعلی",
		domain.LocaleEN: "Current Price",
		domain.LocaleZH: "当前价格",
		domain.LocaleRU: "Текущая цена",
	},
	msgDifference: {
		domain.LocaleFA: "تفاوت",
		domain.LocaleEN: "Difference",
		domain.LocaleZH: "差额",
		domain.LocaleRU: "Разница",
	},
	msgFetchError: {
		domain.LocaleFA: "❌ خطا در دریافت داده ها: %v",
		domain.LocaleEN: "❌ Error retrieving data: %v",
		domain.LocaleZH: "❌ 获取数据时出错: %v",
		domain.LocaleRU: "❌ Ошибка при получении данных: %v",
	},
	msgRetrying: {
		domain.LocaleFA: "❌ خطا در دریافت قیمت‌ها. تلاش مجدد در %d ثانیه...",
		domain.LocaleEN: "❌ Error retrieving prices. Retrying in %d seconds...",
		domain.LocaleZH: "❌ 获取价格时出错。%d秒后重试...",
		domain.LocaleRU: "❌ Ошибка при получении цен. Повторная попытка через %d секунд...",
	},
	msgSaveError: {
		domain.LocaleFA: "⚠️ خطا در ذخیره قیمت‌ها: %v",
		domain.LocaleEN: "⚠️ Failed to save prices: %v",
		domain.LocaleZH: "⚠️ 保存价格失败: %v",
		domain.LocaleRU: "⚠️ Не удалось сохранить цены: %v",
	},
	msgStateLoadError: {
		domain.LocaleFA: "⚠️ خواندن قیمت‌های قبلی ممکن نشد، از حالت خالی شروع می‌شود: %v",
		domain.LocaleEN: "⚠️ Could not read previous prices, starting empty: %v",
		domain.LocaleZH: "⚠️ 无法读取以前的价格，从空状态开始: %v",
		domain.LocaleRU: "⚠️ Не удалось прочитать прошлые цены, начинаем с пустого состояния: %v",
	},
	msgCountdown: {
		domain.LocaleFA: "⏳ بررسی بعدی در %d ثانیه...",
		domain.LocaleEN: "Next check in %d seconds...",
		domain.LocaleZH: "下次检查在%d秒后...",
		domain.LocaleRU: "Следующая проверка через %d секунд...",
	},
	msgStopped: {
		domain.LocaleFA: "⛔ ربات متوقف شد",
		domain.LocaleEN: "⛔ Bot stopped",
		domain.LocaleZH: "⛔ 机器人已停止",
		domain.LocaleRU: "⛔ Бот остановлен",
	},
}

var changeLabels = map[domain.ChangeKind]map[domain.Locale]string{
	domain.ChangeIncrease: {
		domain.LocaleFA: "📈 افزایش",
		domain.LocaleEN: "📈 Increase",
		domain.LocaleZH: "📈 增加",
		domain.LocaleRU: "📈 Увеличение",
	},
	domain.ChangeDecrease: {
		domain.LocaleFA: "📉 کاهش",
		domain.LocaleEN: "📉 Decrease",
		domain.LocaleZH: "📉 减少",
		domain.LocaleRU: "📉 Уменьшение",
	},
	domain.ChangeNewRecord: {
		domain.LocaleFA: "🆕 اولین ثبت",
		domain.LocaleEN: "🆕 First Record",
		domain.LocaleZH: "🆕 首次记录",
		domain.LocaleRU: "🆕 Первая запись",
	},
}

var currencyUnits = map[domain.Locale]string{
	domain.LocaleFA: "تومان",
	domain.LocaleEN: "IRR",
	domain.LocaleZH: "伊朗里亚尔",
	domain.LocaleRU: "Иранский риал",
}

// localized renders one message in every locale, primary locale first.
func localized(key messageKey, args ...any) []string {
	out := make([]string, 0, len(domain.Locales))
	for _, locale := range domain.Locales {
		out = append(out, format(key, locale, args...))
	}
	return out
}

func format(key messageKey, locale domain.Locale, args ...any) string {
	tmpl := messages[key][locale]
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
