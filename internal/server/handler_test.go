package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route/param"

	"tileman/internal/deser"
	"tileman/internal/driver"
)

const rootDoc = "-[\"Pipes\", color(10,20,30)]\n" +
	`[#nm:"Pipe Straight", #sz:point(1,1), #specs:[1], #specs2:0, #tp:"voxelStruct", #bfTiles:0, #ptPos:0, #tags:["pipe"]]` + "\n" +
	"-[\"Walls\", color(1,2,3)]--CATEGORY_INDEX:4\n" +
	`[#nm:"Wall", #sz:point(2,1), #specs:[1,1], #specs2:0, #tp:"box", #bfTiles:0, #ptPos:0, #tags:[]]` + "\n" +
	"-[broken\n"

func testHandler() Handler {
	return Handler{Result: &driver.Result{Init: deser.ParseTileInit(rootDoc, nil, "/lv/tiles")}}
}

func decodeBody(t *testing.T, ctx *app.RequestContext, v any) {
	t.Helper()
	if err := json.Unmarshal(ctx.Response.Body(), v); err != nil {
		t.Fatalf("decode %s: %v", ctx.Response.Body(), err)
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestCategories(t *testing.T) {
	ctx := &app.RequestContext{}
	testHandler().categories(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	var body struct {
		Root       string `json:"root"`
		TileCount  int    `json:"tile_count"`
		Categories []struct {
			Index int    `json:"index"`
			Name  string `json:"name"`
			Color string `json:"color"`
		} `json:"categories"`
	}
	decodeBody(t, ctx, &body)
	if body.Root != "/lv/tiles" || body.TileCount != 2 || len(body.Categories) != 2 {
		t.Fatalf("body = %+v", body)
	}
	if body.Categories[1].Name != "Walls" || body.Categories[1].Index != 4 || body.Categories[0].Color != "#0a141e" {
		t.Fatalf("categories = %+v", body.Categories)
	}
}

func TestCategory_ByIndex(t *testing.T) {
	tests := []struct {
		index  string
		status int
		code   string
	}{
		{"4", consts.StatusOK, ""},
		{"9", consts.StatusNotFound, "category_not_found"},
		{"x", consts.StatusBadRequest, "invalid_index"},
	}
	for _, tt := range tests {
		t.Run(tt.index, func(t *testing.T) {
			ctx := &app.RequestContext{}
			ctx.Params = param.Params{{Key: "index", Value: tt.index}}
			testHandler().category(context.Background(), ctx)
			if ctx.Response.StatusCode() != tt.status {
				t.Fatalf("status = %d, want %d", ctx.Response.StatusCode(), tt.status)
			}
			if tt.code == "" {
				var c struct {
					Name string `json:"name"`
				}
				decodeBody(t, ctx, &c)
				if c.Name != "Walls" {
					t.Fatalf("category = %+v", c)
				}
				return
			}
			var eb errorBody
			decodeBody(t, ctx, &eb)
			if eb.Error.Code != tt.code {
				t.Fatalf("error code = %q, want %q", eb.Error.Code, tt.code)
			}
		})
	}
}

func TestTiles_NameFilter(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/tiles?name=PIPE")
	testHandler().listTiles(context.Background(), ctx)
	var body struct {
		Count int       `json:"count"`
		Tiles []tileHit `json:"tiles"`
	}
	decodeBody(t, ctx, &body)
	if body.Count != 1 || body.Tiles[0].Name != "Pipe Straight" || body.Tiles[0].Category != 0 {
		t.Fatalf("body = %+v", body)
	}

	all := &app.RequestContext{}
	all.Request.SetRequestURI("/api/tiles")
	testHandler().listTiles(context.Background(), all)
	decodeBody(t, all, &body)
	if body.Count != 2 || body.Tiles[1].Type != "box" || body.Tiles[1].Width != 2 {
		t.Fatalf("all tiles = %+v", body)
	}
}

func TestErrors(t *testing.T) {
	ctx := &app.RequestContext{}
	testHandler().listErrors(context.Background(), ctx)
	var body struct {
		Errors []struct {
			Line int    `json:"line"`
			Kind string `json:"kind"`
		} `json:"errors"`
	}
	decodeBody(t, ctx, &body)
	if len(body.Errors) != 1 || body.Errors[0].Line != 5 || body.Errors[0].Kind != "RegexMatchFailed" {
		t.Fatalf("errors = %+v", body.Errors)
	}
}

func TestNotLoaded(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{}.healthz(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusServiceUnavailable {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	var eb errorBody
	decodeBody(t, ctx, &eb)
	if eb.Error.Code != "not_loaded" {
		t.Fatalf("body = %s", ctx.Response.Body())
	}
}

func TestCORSPreflight(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodOptions)
	corsMiddleware()(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusNoContent {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	if string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")) != "*" {
		t.Fatal("missing CORS header")
	}
}
