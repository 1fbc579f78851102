package generator

import (
	"fmt"

	"github.com/mkraev/neurocontent-bot/types"
)

// BuildPrompt renders the fixed provider prompt for a content type. An
// unknown type falls back to the collected text verbatim.
func BuildPrompt(contentType types.ContentType, name string) string {
	switch contentType {
	case types.ContentProduct:
		return fmt.Sprintf("Напиши продающее описание товара: %s. Укажи выгоды и преимущества.", name)
	case types.ContentSite:
		return fmt.Sprintf("Напиши SEO текст для сайта на тему: %s.", name)
	case types.ContentSocial:
		return fmt.Sprintf("Напиши рекламный пост для соцсетей на тему: %s.", name)
	default:
		return name
	}
}
