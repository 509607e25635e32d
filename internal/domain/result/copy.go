package result

import "github.com/okian/oshichecker/internal/domain/locale"

var noResultMessage = map[locale.Locale]string{
	locale.JA: "結果がありません。診断を完了してください。",
	locale.KO: "결과가 없습니다. 진단을 먼저 완료해주세요.",
	locale.EN: "No results found. Please complete the diagnosis first.",
}

var watermarkText = map[locale.Locale]string{
	locale.JA: "📸 結果をスクショしてXでシェアしよう！",
	locale.KO: "📸 결과를 캡처해서 X에 공유하세요!",
	locale.EN: "📸 Screenshot your results and share on X!",
}

// NoResultMessage is shown when the ranking is empty.
func NoResultMessage(l locale.Locale) string { return localized(noResultMessage, l) }

// Watermark is printed under the result cards for screenshots.
func Watermark(l locale.Locale) string { return localized(watermarkText, l) }

func localized(table map[locale.Locale]string, l locale.Locale) string {
	if v, ok := table[l]; ok {
		return v
	}
	return table[locale.Default]
}
