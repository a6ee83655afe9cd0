//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"symdoc/internal/adapter/analyzer"
	"symdoc/internal/adapter/memstore"
	"symdoc/internal/adapter/render"
	"symdoc/internal/domain"
	"symdoc/internal/port"
	"symdoc/internal/usecase"
)

var (
	store     *memstore.MemoryStore
	extractor *analyzer.SymbolExtractor
)

func init() {
	store = memstore.NewMemoryStore()
	extractor = analyzer.NewSymbolExtractor()
}

func main() {
	c := make(chan struct{})

	js.Global().Set("symdocAdd", js.FuncOf(addContent))
	js.Global().Set("symdocRender", js.FuncOf(renderDocument))
	js.Global().Set("symdocClear", js.FuncOf(clearFiles))
	js.Global().Set("symdocStats", js.FuncOf(getStats))

	<-c
}

func addContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: symdocAdd(filename, content)")
	}

	filename := args[0].String()
	content := args[1].String()

	res := extractor.ExtractFile(filename, content)
	if res.Skip == domain.SkipUnsupported {
		return makeError("unsupported file type: " + filename)
	}
	if res.Skip == domain.SkipExtractFailed {
		return makeError("extraction failed: " + res.Err.Error())
	}

	err := store.PutFiles([]port.CachedFile{{
		Path:    filename,
		Size:    int64(len(content)),
		Lang:    res.Lang,
		Skip:    res.Skip,
		Symbols: res.Symbols,
	}})
	if err != nil {
		return makeError("storing failed: " + err.Error())
	}

	return makeResult(map[string]interface{}{
		"success":  true,
		"symbols":  len(res.Symbols),
		"language": res.Lang,
		"filename": filename,
	})
}

func renderDocument(this js.Value, args []js.Value) interface{} {
	format := "markdown"
	if len(args) > 0 {
		format = args[0].String()
	}

	renderer, err := render.ForFormat(format, "", "")
	if err != nil {
		return makeError(err.Error())
	}

	files, _ := store.ListFiles()
	var symbols []domain.Symbol
	for _, f := range files {
		symbols = append(symbols, f.Symbols...)
	}

	data, err := renderer.Render(usecase.BuildReport("", symbols))
	if err != nil {
		return makeError("render failed: " + err.Error())
	}
	return makeResult(map[string]interface{}{
		"document": string(data),
		"format":   format,
	})
}

func clearFiles(this js.Value, args []js.Value) interface{} {
	store = memstore.NewMemoryStore()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func getStats(this js.Value, args []js.Value) interface{} {
	files, _ := store.ListFiles()

	filenames := make([]string, len(files))
	total := 0
	for i, f := range files {
		filenames[i] = f.Path
		total += len(f.Symbols)
	}

	return makeResult(map[string]interface{}{
		"totalFiles":   len(files),
		"totalSymbols": total,
		"files":        filenames,
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
