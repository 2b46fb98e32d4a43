package prefabs

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// SizeScript evaluates a tengo program per spawned sprite. The program sees
// `index` and `count` and must assign a number to `multiplier`.
type SizeScript struct {
	mu       sync.Mutex
	compiled *tengo.Compiled
	fallback float64
}

// CompileSizeScript compiles source, loading it first when source names a
// .tengo file. fallback is returned whenever a run fails.
func CompileSizeScript(source string, fallback float64) (*SizeScript, error) {
	src := []byte(source)
	if strings.HasSuffix(strings.TrimSpace(source), ".tengo") {
		b, err := LoadScript(strings.TrimSpace(source))
		if err != nil {
			return nil, fmt.Errorf("prefabs: load size script %s: %w", source, err)
		}
		src = b
	}

	script := tengo.NewScript(src)
	_ = script.Add("index", 0)
	_ = script.Add("count", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile size script: %w", err)
	}
	// globals stay undefined until the first run
	if err := compiled.Set("index", 0); err != nil {
		return nil, fmt.Errorf("prefabs: size script: %w", err)
	}
	if err := compiled.Set("count", 1); err != nil {
		return nil, fmt.Errorf("prefabs: size script: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("prefabs: run size script: %w", err)
	}
	if !compiled.IsDefined("multiplier") {
		return nil, fmt.Errorf("prefabs: size script does not define multiplier")
	}
	return &SizeScript{compiled: compiled, fallback: fallback}, nil
}

// Multiplier runs the script for sprite index out of count.
func (s *SizeScript) Multiplier(index, count int) float64 {
	if s == nil {
		return 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.compiled.Set("index", index); err != nil {
		log.Printf("prefabs: size script: %v", err)
		return s.fallback
	}
	if err := s.compiled.Set("count", count); err != nil {
		log.Printf("prefabs: size script: %v", err)
		return s.fallback
	}
	if err := s.compiled.Run(); err != nil {
		log.Printf("prefabs: size script index=%d: %v", index, err)
		return s.fallback
	}
	v := s.compiled.Get("multiplier")
	switch v.ValueType() {
	case "int", "float":
		return v.Float()
	default:
		log.Printf("prefabs: size script index=%d: multiplier is %s, not a number", index, v.ValueType())
		return s.fallback
	}
}
