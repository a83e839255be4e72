package reminder

import "duebell/internal/domain"

// Hardcoded fallback copy used when the provider fails. The reminder must
// always surface something, so failures degrade to these strings instead
// of an error path.
var fallbackByTier = map[domain.Tier]string{
	domain.TierLow:      "请注意：安全课程需要在11月30日前完成。",
	domain.TierMedium:   "提醒：安全课程截止日期临近，请尽快完成。",
	domain.TierHigh:     "注意！安全课程即将截止，请抓紧时间完成！",
	domain.TierCritical: "紧急提醒！安全课程马上就要截止，请立即完成！",
}

// fallbackEmpty is used when the provider answered but the reply was empty.
const fallbackEmpty = "请立即完成安全课程！"

// fallbackText returns the fallback reminder for a tier.
func fallbackText(tier domain.Tier) string {
	if text, ok := fallbackByTier[tier]; ok {
		return text
	}
	return fallbackEmpty
}
