package petitiongen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/llm"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/prompt"
	"k8s.io/klog/v2"
)

// ErrEmptyGeneration 模型返回了空文本
var ErrEmptyGeneration = errors.New("empty generation")

const fallbackFormat = `%s

For the Church throughout the world, that she may be a faithful witness to the Gospel, let us pray to the Lord.
For the leaders of nations, that they may work for justice and peace, let us pray to the Lord.
For those who are sick, suffering, or in need, that they may know the healing presence of Christ, let us pray to the Lord.
For all who have died, that they may rest in the peace of Christ, let us pray to the Lord.
For our parish community, that we may grow in faith, hope, and love, let us pray to the Lord.`

// Fallback 固定的回退文本，与语言无关，只插入标题
func Fallback(title string) string {
	return fmt.Sprintf(fallbackFormat, title)
}

// Input 一次生成所需的全部字段
type Input struct {
	ParishID      string
	Title         string
	Date          string
	Language      string
	CommunityInfo string
	TemplateID    *uint
}

// Result 生成结果，Source 区分模型生成和回退文本
type Result struct {
	Source   model.GenerationSource
	Text     string
	Model    string
	Duration time.Duration
	Err      error // 触发回退的上游错误
}

// TemplateResolver 按堂区解析上下文模板
type TemplateResolver interface {
	Get(ctx context.Context, parishID string, id uint) (*model.PetitionTemplate, error)
}

// PromptSource 提供堂区的提示词模板，没有自定义模板时应返回默认模板
type PromptSource interface {
	PromptTemplate(ctx context.Context, parishID string) (string, error)
}

// Generator 无状态，可被多个请求并发调用
type Generator struct {
	client    llm.Client
	templates TemplateResolver
	prompts   PromptSource
	timeout   time.Duration
}

// New 创建生成器；timeout 为 0 时不额外限制上游调用时长
func New(client llm.Client, templates TemplateResolver, prompts PromptSource, timeout time.Duration) *Generator {
	return &Generator{
		client:    client,
		templates: templates,
		prompts:   prompts,
		timeout:   timeout,
	}
}

// BuildPrompt 解析模板并替换占位符
// 上下文模板解析失败只记录日志；提示词模板获取失败会返回错误
func (g *Generator) BuildPrompt(ctx context.Context, in Input) (string, error) {
	templateText := ""
	if in.TemplateID != nil && g.templates != nil {
		tpl, err := g.templates.Get(ctx, in.ParishID, *in.TemplateID)
		if err != nil {
			klog.Warningf("[PetitionGen] 解析上下文模板失败 parish=%s, templateID=%d: %v", in.ParishID, *in.TemplateID, err)
		} else {
			templateText = tpl.Context
		}
	}

	promptTemplate, err := g.prompts.PromptTemplate(ctx, in.ParishID)
	if err != nil {
		return "", fmt.Errorf("get prompt template failed: %w", err)
	}

	return prompt.Render(promptTemplate, prompt.Vars{
		Title:         in.Title,
		Date:          in.Date,
		Language:      in.Language,
		CommunityInfo: in.CommunityInfo,
		Template:      templateText,
	}), nil
}

// Generate 调用模型生成祈祷意向；任何上游失败都回退为固定文本，不返回错误
func (g *Generator) Generate(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()

	fullPrompt, err := g.BuildPrompt(ctx, in)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	klog.V(6).Infof("[PetitionGen] 开始生成 parish=%s, title=%s, language=%s", in.ParishID, in.Title, in.Language)
	text, err := g.client.Complete(callCtx, fullPrompt)
	if err == nil && text == "" {
		err = ErrEmptyGeneration
	}
	if err != nil {
		klog.Warningf("[PetitionGen] 生成失败，使用回退文本 parish=%s, title=%s: %v", in.ParishID, in.Title, err)
		return &Result{
			Source:   model.SourceFallback,
			Text:     Fallback(in.Title),
			Model:    g.client.Model(),
			Duration: time.Since(start),
			Err:      err,
		}, nil
	}

	klog.V(6).Infof("[PetitionGen] 生成成功 parish=%s, title=%s, chars=%d", in.ParishID, in.Title, len(text))
	return &Result{
		Source:   model.SourceGenerated,
		Text:     text,
		Model:    g.client.Model(),
		Duration: time.Since(start),
	}, nil
}
