// Package prompt 提示词模板的占位符替换
package prompt

import "strings"

// 模板中可用的占位符
const (
	PlaceholderTitle         = "{{title}}"
	PlaceholderDate          = "{{date}}"
	PlaceholderLanguage      = "{{language}}"
	PlaceholderCommunityInfo = "{{community_info}}"
	PlaceholderTemplate      = "{{template}}"
)

// Placeholders 所有已知占位符
var Placeholders = []string{
	PlaceholderTitle,
	PlaceholderDate,
	PlaceholderLanguage,
	PlaceholderCommunityInfo,
	PlaceholderTemplate,
}

// Vars 替换用的字段值，缺失字段按空字符串替换
type Vars struct {
	Title         string
	Date          string
	Language      string
	CommunityInfo string
	Template      string
}

// DefaultTemplate 堂区没有自定义提示词时使用
const DefaultTemplate = `You are helping a Catholic parish prepare the Prayer of the Faithful (general intercessions).

Write the petitions for: {{title}}
Date: {{date}}
Language: {{language}}

Follow the traditional order: the Church, world leaders and public authorities, those burdened by any kind of difficulty, and the local community, including the sick and the dead.
Each petition is a single line ending with the response "let us pray to the Lord" (translated into the requested language).

Community information to include (may be empty):
{{community_info}}

Additional intentions from the parish template (may be empty):
{{template}}

Return only the petition text, with the title on the first line.`

// Render 一次性替换所有占位符
// 单次扫描，替换结果中再出现的占位符不会被二次展开
func Render(tpl string, vars Vars) string {
	r := strings.NewReplacer(
		PlaceholderTitle, vars.Title,
		PlaceholderDate, vars.Date,
		PlaceholderLanguage, vars.Language,
		PlaceholderCommunityInfo, vars.CommunityInfo,
		PlaceholderTemplate, vars.Template,
	)
	return r.Replace(tpl)
}

// Unknown 返回模板中未知的 {{...}} 占位符，用于保存设置前的校验
func Unknown(tpl string) []string {
	var unknown []string
	rest := tpl
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			break
		}
		token := rest[start : start+end+2]
		if !isKnown(token) {
			unknown = append(unknown, token)
		}
		rest = rest[start+end+2:]
	}
	return unknown
}

func isKnown(token string) bool {
	for _, p := range Placeholders {
		if p == token {
			return true
		}
	}
	return false
}
