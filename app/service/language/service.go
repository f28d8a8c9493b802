package language

import (
	"context"

	"officesync-ai/app/service/conversation"
	"officesync-ai/app/service/tool"

	"github.com/samber/do"
)

const toolSetLanguage = "set_language"

var _ tool.Module = (*Service)(nil)

// Service exposes the set_language tool. The preference lives in the
// conversation store next to the user's history; setting it is
// idempotent.
type Service struct {
	store conversation.Store
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		store: do.MustInvoke[*conversation.Service](di),
	}, nil
}

func newService(store conversation.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Definitions() []tool.Definition {
	return []tool.Definition{{
		Name:        toolSetLanguage,
		Description: "Save the language the user chose for the conversation.",
		Parameters: []tool.Parameter{{
			Name:        "language",
			Type:        tool.TypeString,
			Description: "The language the user chose.",
			Enum:        []string{"Vietnamese", "English"},
			Required:    true,
		}},
	}}
}

func (s *Service) Instructions() string {
	return ""
}

func (s *Service) Execute(_ context.Context, call tool.Call) (any, error) {
	lang := conversation.Language(call.Args.String("language"))

	s.store.SetLanguage(call.UserID, lang)

	if lang == conversation.LanguageVietnamese {
		return "Đã ghi nhận: Tiếng Việt. Từ giờ tôi sẽ trả lời bằng Tiếng Việt.", nil
	}

	return "Language set to English. I will respond in English from now on.", nil
}
