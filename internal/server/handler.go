package server

import (
	"context"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"tileman/internal/diagfmt"
	"tileman/internal/driver"
	"tileman/internal/tiles"
)

// Handler serves a loaded catalogue read-only.
type Handler struct {
	Result *driver.Result
}

// New builds a hertz server listening on addr with the catalogue routes.
func New(addr string, h Handler) *server.Hertz {
	s := server.Default(server.WithHostPorts(addr))
	s.Use(corsMiddleware())
	h.RegisterRoutes(s)
	return s
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.GET("/healthz", h.healthz)

	api := s.Group("/api")
	api.GET("/categories", h.categories)
	api.GET("/categories/:index", h.category)
	api.GET("/tiles", h.listTiles)
	api.GET("/errors", h.listErrors)
	api.GET("/subfolders", h.subfolders)
}

type tileHit struct {
	Category int      `json:"category"`
	Position int      `json:"position"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Width    int32    `json:"width"`
	Height   int32    `json:"height"`
	Tags     []string `json:"tags"`
}

type subfolderView struct {
	Name     string               `json:"name"`
	Path     string               `json:"path"`
	Failed   bool                 `json:"failed"`
	Category diagfmt.CategoryView `json:"category"`
	Errors   []diagfmt.ErrorView  `json:"errors"`
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	if h.Result == nil {
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "not_loaded", "catalogue not loaded")
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{
		"status":     "ok",
		"root":       h.Result.Init.Root,
		"categories": len(h.Result.Init.Categories),
		"tiles":      h.Result.Init.TileCount(),
		"cached":     h.Result.Cached,
	})
}

func (h Handler) categories(_ context.Context, ctx *app.RequestContext) {
	if !h.ready(ctx) {
		return
	}
	view := diagfmt.BuildCatalogueView(&h.Result.Init)
	ctx.JSON(consts.StatusOK, map[string]any{
		"root":       view.Root,
		"categories": view.Categories,
		"tile_count": view.TileCount,
	})
}

func (h Handler) category(_ context.Context, ctx *app.RequestContext) {
	if !h.ready(ctx) {
		return
	}
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_index", "category index must be an integer")
		return
	}
	view := diagfmt.BuildCatalogueView(&h.Result.Init)
	for _, c := range view.Categories {
		if c.Index == index {
			ctx.JSON(consts.StatusOK, c)
			return
		}
	}
	writeErrorBody(ctx, consts.StatusNotFound, "category_not_found", "no category with index "+strconv.Itoa(index))
}

// listTiles ищет тайлы по подстроке имени без учёта регистра; пустой name - все тайлы.
func (h Handler) listTiles(_ context.Context, ctx *app.RequestContext) {
	if !h.ready(ctx) {
		return
	}
	needle := strings.ToLower(strings.TrimSpace(string(ctx.Query("name"))))
	hits := make([]tileHit, 0)
	for _, c := range h.Result.Init.Categories {
		for i, t := range c.Tiles {
			if needle != "" && !strings.Contains(strings.ToLower(t.Name), needle) {
				continue
			}
			hits = append(hits, tileHit{
				Category: c.Index,
				Position: i,
				Name:     t.Name,
				Type:     t.Type.String(),
				Width:    t.Width(),
				Height:   t.Height(),
				Tags:     append([]string{}, t.Tags...),
			})
		}
	}
	ctx.JSON(consts.StatusOK, map[string]any{"tiles": hits, "count": len(hits)})
}

func (h Handler) listErrors(_ context.Context, ctx *app.RequestContext) {
	if !h.ready(ctx) {
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{
		"errors": diagfmt.ErrorViews(h.Result.Init.ErroredLines),
	})
}

func (h Handler) subfolders(_ context.Context, ctx *app.RequestContext) {
	if !h.ready(ctx) {
		return
	}
	out := make([]subfolderView, 0, len(h.Result.Subfolders))
	for _, sc := range h.Result.Subfolders {
		c := sc.Category
		list := c.Tiles
		if list == nil {
			list = []tiles.TileInfo{}
		}
		out = append(out, subfolderView{
			Name:   sc.Name,
			Path:   sc.Path,
			Failed: sc.Failed,
			Category: diagfmt.CategoryView{
				Index:     c.Index,
				Name:      c.Name,
				Color:     c.Color.Hex(),
				Subfolder: c.Subfolder,
				Enabled:   c.Enabled,
				Tiles:     list,
			},
			Errors: diagfmt.ErrorViews(sc.ErroredLines),
		})
	}
	ctx.JSON(consts.StatusOK, map[string]any{"subfolders": out})
}

func (h Handler) ready(ctx *app.RequestContext) bool {
	if h.Result == nil {
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "not_loaded", "catalogue not loaded")
		return false
	}
	return true
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
