package services

import "strings"

const planSystemPrompt = `You are a presentation strategist. Convert the user's business document into a slide plan.
Structure the deck conclusion-first, keep every slide to one message, keep points mutually exclusive and
collectively exhaustive, and carry every figure from the source into the plan.`

// planUserPrompt describes the plan shape the renderer understands. The
// example values are Japanese because the default theme targets Japanese
// business decks.
func planUserPrompt(content string) string {
	var b strings.Builder
	b.WriteString(`以下の内容を、論理的で説得力のあるスライド構造に変換してください。

【入力内容】
`)
	b.WriteString(content)
	b.WriteString(`

【出力形式】
{
  "title": "プレゼンテーションのタイトル",
  "objective": "プレゼンテーションの目的",
  "target_audience": "想定聴衆",
  "slides": [
    {"slide_number": 1, "title": "スライドタイトル", "type": "title_slide",
     "content": {"main_message": "メインメッセージ", "subtitle": "サブタイトル"}},
    {"slide_number": 2, "title": "現状分析", "type": "content_slide",
     "content": {"main_message": "現状の課題", "supporting_points": ["ポイント1", "ポイント2"],
                 "data": {"market_size": "1000億円", "growth_rate": "5%"}}},
    {"slide_number": 3, "title": "解決策", "type": "solution_slide",
     "content": {"main_message": "提案内容", "solution_points": ["解決策1"], "benefits": ["便益1"]}},
    {"slide_number": 4, "title": "実行計画", "type": "implementation_slide",
     "content": {"main_message": "ロードマップ", "timeline": [{"phase": "Phase 1", "duration": "3ヶ月", "activities": ["活動1"]}]}},
    {"slide_number": 5, "title": "期待効果", "type": "financial_slide",
     "content": {"main_message": "投資効果", "financial_data": {"investment": "5000万円",
                 "revenue_projection": [{"year": 1, "amount": "100万円"}], "roi": "2年"}}},
    {"slide_number": 6, "title": "次のステップ", "type": "conclusion_slide",
     "content": {"main_message": "今後のアクション", "action_items": ["アクション1"],
                 "timeline": "実行タイムライン", "contact_info": "連絡先"}}
  ]
}

スライド数は5〜8枚程度。JSONのみを出力してください。`)
	return b.String()
}
