package genai

import (
	"fmt"

	"duebell/internal/domain"
)

// Prompts live here so tone changes are a single-file edit. Keep them
// short — every token costs money and latency.

// promptReminder is the system prompt for reminder text generation.
// Output is spoken aloud by a TTS engine, so no markdown and no emojis.
const promptReminder = `你是一个课程截止日期提醒助手。用户必须在11月30日前完成安全课程。

规则：
- 用中文写一条提醒，1-2句话，提到剩余时间。
- 语气要符合给出的紧迫程度：宽松时温和提示，紧急时强烈催促。
- 输出会被语音朗读，不要使用任何markdown格式，不要使用表情符号。
- 只输出提醒文本本身，不要任何解释。`

// toneByTier maps each tier to the tone instruction embedded in the
// user prompt.
var toneByTier = map[domain.Tier]string{
	domain.TierLow:      "宽松：时间还充裕，温和地提醒一下即可",
	domain.TierMedium:   "中等：截止日期临近，建议尽快安排时间",
	domain.TierHigh:     "紧张：只剩一周以内，必须抓紧完成",
	domain.TierCritical: "紧急：马上就要截止，立即完成，语气强烈",
}

// reminderUserPrompt builds the user message for a countdown snapshot.
func reminderUserPrompt(snap domain.Snapshot) string {
	return fmt.Sprintf("剩余时间：%d天（约%d小时）。紧迫程度（%s）：%s。请生成提醒。",
		snap.DaysLeft, snap.HoursLeft, snap.Tier, toneByTier[snap.Tier])
}

// imagePromptByTier maps each tier to a background image prompt. The
// image is cosmetic, generated once at startup.
var imagePromptByTier = map[domain.Tier]string{
	domain.TierLow:      "A calm minimalist illustration of a desk calendar with plenty of days left, soft morning light, muted blue tones",
	domain.TierMedium:   "An illustration of a desk calendar with pages starting to flip away, late afternoon light, amber accents",
	domain.TierHigh:     "A dramatic illustration of an hourglass with sand running low beside a calendar, warm orange glow, sense of urgency",
	domain.TierCritical: "An intense illustration of a nearly empty hourglass and a glowing red deadline date on a calendar, dark background, high contrast",
}
