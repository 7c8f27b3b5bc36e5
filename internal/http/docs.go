package http

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

// apiDocument is the OpenAPI document decoded once into JSON-encodable values.
var apiDocument = sync.OnceValues(func() (any, error) {
	var doc any
	if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
		return nil, fmt.Errorf("decode openapi document: %w", err)
	}
	return jsonCompatible(doc), nil
})

func (h *Handler) apiDocs(c *gin.Context) {
	doc, err := apiDocument()
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) apiDocsYAML(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", openAPIYAML)
}

// jsonCompatible rewrites mappings with non-string keys, such as unquoted status codes, into
// string-keyed maps.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = jsonCompatible(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = jsonCompatible(t[i])
		}
		return t
	default:
		return v
	}
}
