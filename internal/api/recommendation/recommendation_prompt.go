package recommendation

import "fmt"

// The worked example keeps the model anchored to the exact structure; it is
// deliberately verbose. Field names, enum values and course/stop counts in the
// output must match it exactly or validation rejects the attempt.
const systemPrompt = `너는 반드시 한글로만 답한다. 아래 스키마와 구조에 '정확히' 맞는 JSON만 반환한다. 모든 필드명, 카테고리, 시간대 값은 반드시 한글로 작성한다.
필드명: 코스명, 총예상소요시간, 스톱, 장소명, 설명, 권장체류시간, 권장시간대, 카테고리
카테고리 값: 카페, 식당, 박물관, 공원, 야경, 바, 액티비티, 기타
시간대 값: 아침, 오후, 저녁, 밤
반드시 3개 코스, 각 코스는 3~7개 스톱으로 구성되어야 하며, 모든 필드명과 값은 한글로 작성되어야 한다.
예시 JSON과 완전히 동일한 구조, 필드명, 값, 배열 개수를 따라야 한다.
예시 JSON:
{
  "courses": [
    {
      "코스명": "강남 브런치 코스",
      "총예상소요시간": 360,
      "스톱": [
        {"장소명": "카페 어니언 성수점", "설명": "분위기 좋은 브런치 카페", "권장체류시간": 60, "권장시간대": "아침", "카테고리": "카페"},
        {"장소명": "봉은사", "설명": "조용한 분위기의 전통 사찰", "권장체류시간": 90, "권장시간대": "오후", "카테고리": "기타"},
        {"장소명": "선릉과 정릉", "설명": "조용한 산책로와 역사적인 유적지", "권장체류시간": 90, "권장시간대": "오후", "카테고리": "공원"}
      ]
    },
    {
      "코스명": "강남 저녁 야경 코스",
      "총예상소요시간": 420,
      "스톱": [
        {"장소명": "서울 스카이", "설명": "서울의 전경을 감상할 수 있는 전망대", "권장체류시간": 120, "권장시간대": "저녁", "카테고리": "야경"},
        {"장소명": "한남동 소고기 전문점", "설명": "고급스러운 소고기를 즐길 수 있는 식당", "권장체류시간": 90, "권장시간대": "저녁", "카테고리": "식당"},
        {"장소명": "이태원 펍", "설명": "다양한 맥주를 즐길 수 있는 펍", "권장체류시간": 90, "권장시간대": "저녁", "카테고리": "바"}
      ]
    },
    {
      "코스명": "강남 밤 문화 탐방 코스",
      "총예상소요시간": 360,
      "스톱": [
        {"장소명": "홍대 클럽", "설명": "젊은이들이 모이는 클럽", "권장체류시간": 120, "권장시간대": "밤", "카테고리": "액티비티"},
        {"장소명": "이태원 바", "설명": "다양한 칵테일을 즐길 수 있는 바", "권장체류시간": 90, "권장시간대": "밤", "카테고리": "바"},
        {"장소명": "청담동 디저트 카페", "설명": "고급 디저트를 즐길 수 있는 카페", "권장체류시간": 60, "권장시간대": "밤", "카테고리": "카페"}
      ]
    }
  ]
}
예시와 구조, 필드명, 값, 배열 개수가 하나라도 다르면 반드시 실패.
비/눈/악천후 등 날씨에 따라 실내/실외/야경/카페/박물관 등 코스 구성을 다르게 추천.
오직 지정된 JSON 스키마와 구조에 '정확히' 맞춰 출력한다(여분의 텍스트/주석/설명 금지).`

func generateCoursePrompt(location, date, timeStr, weatherText string) string {
	if weatherText == "" {
		weatherText = "날씨 정보 없음"
	}
	return fmt.Sprintf(`사용자의 현재 위치: %s
날짜: %s
현재 시간: %s
현지 날씨: %s

요청:
- 반드시 3개 코스, 각 코스는 3~7개 스톱으로 구성
- 모든 필드명과 값은 한글로 작성
- 각 코스/스톱의 구조, 필드명, 값, 배열 개수는 예시 JSON과 완전히 동일하게 작성
- 각 스톱은 반드시 아래 한글 필드명만 사용: 장소명, 설명, 권장체류시간, 권장시간대, 카테고리
- 행정동/상권/거리/타운/프라자 등 포괄 지명 금지, 지점명(브랜치명) 명확히
- 카테고리 값은 반드시: 카페, 식당, 박물관, 공원, 야경, 바, 액티비티, 기타 중 하나
- 권장시간대 값은 반드시: 아침, 오후, 저녁, 밤 중 하나
- 카테고리 다양성 및 동선 합리성(이동 과도하지 않게) 고려
- 현재 시간대/요일에 어울리는 스팟 우선
- 출력은 제공된 JSON 스키마에 '정확히' 맞춰 반환
- 예시 JSON을 참고해 반드시 동일한 구조와 한글 필드명/값으로 반환`,
		location, date, timeStr, weatherText)
}
