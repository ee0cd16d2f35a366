package usecase

import (
	"fmt"
	"strings"

	"github.com/salesai/backend/internal/domain"
)

const analystSystemPrompt = "你是一位頂尖的 B2B 銷售顧問與產業分析師，只以繁體中文回覆，並且只輸出 JSON。"

var stringList = &domain.Schema{Type: domain.SchemaArray, Items: &domain.Schema{Type: domain.SchemaString}}

// analysisSchema is the fixed structure the report completion must follow
var analysisSchema = &domain.Schema{
	Type: domain.SchemaObject,
	Properties: map[string]*domain.Schema{
		"summary":         {Type: domain.SchemaString},
		"industry_trends": stringList,
		"pain_points":     stringList,
		"solutions": {
			Type: domain.SchemaArray,
			Items: &domain.Schema{
				Type: domain.SchemaObject,
				Properties: map[string]*domain.Schema{
					"title":       {Type: domain.SchemaString},
					"description": {Type: domain.SchemaString},
				},
			},
		},
		"sales_strategy": {
			Type: domain.SchemaObject,
			Properties: map[string]*domain.Schema{
				"positioning": {Type: domain.SchemaString},
				"messages":    stringList,
				"next_steps":  stringList,
			},
		},
	},
	Required: []string{"summary", "industry_trends", "pain_points"},
}

// recommendationSchema is the structure of the solution matching completion
var recommendationSchema = &domain.Schema{
	Type: domain.SchemaObject,
	Properties: map[string]*domain.Schema{
		"solutions": {
			Type: domain.SchemaArray,
			Items: &domain.Schema{
				Type: domain.SchemaObject,
				Properties: map[string]*domain.Schema{
					"id":                {Type: domain.SchemaString},
					"reason":            {Type: domain.SchemaString},
					"matchedPainPoints": stringList,
				},
				Required: []string{"id", "reason"},
			},
		},
	},
	Required: []string{"solutions"},
}

// buildAnalysisPrompt renders the customer facts into the report prompt
func buildAnalysisPrompt(data *domain.CustomerFormData) string {
	return strings.TrimSpace(fmt.Sprintf(`
請擔任一位頂尖的 B2B 銷售顧問與產業分析師。
我將提供關於潛在客戶的資訊，請你根據這些資訊生成一份結構化的銷售分析報告。

客戶資訊如下：
- 產業別: %s
- 公司名稱: %s
- 公司網站: %s
- 公司統編/ID: %s
- 原始情資:
"""
%s
"""

請回傳繁體中文，並嚴格遵守 JSON 格式（不要加任何多餘文字）。
`, data.Industry, data.CompanyName, data.Website, data.CompanyID, data.RawData))
}

// buildRecommendationPrompt lists the customer pain points and the solution
// catalog and asks the model to pick the solutions that address them
func buildRecommendationPrompt(painPoints []string, solutions []domain.SystexSolution) string {
	var b strings.Builder

	b.WriteString("以下是客戶的痛點：\n")
	for i, p := range painPoints {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}

	b.WriteString("\n以下是精誠集團既有的解決方案目錄：\n")
	for _, s := range solutions {
		fmt.Fprintf(&b, "- id: %s\n  名稱: %s\n  可解痛點: %s\n  摘要: %s\n",
			s.ID, s.Title, strings.Join(s.PainPoints, "、"), s.Summary)
	}

	b.WriteString(`
請從目錄中挑選能解決上述痛點的方案，只能使用目錄中的 id。
每個方案請提供 reason（推薦理由，繁體中文）與 matchedPainPoints（對應到的客戶痛點原文）。
若沒有合適的方案，回傳空的 solutions 陣列。請嚴格遵守 JSON 格式。`)

	return b.String()
}
