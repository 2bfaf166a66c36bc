package logger

import (
	"io"
	"log"
	"strings"
	"sync"

	"calmcast/internal/pkg/text"
)

// Generation traffic gets its own dump file so prompt debugging does
// not drown the main log. Bodies are capped; payload dumping is opt-in.

const genDumpCap = 8000

var (
	genMu          sync.Mutex
	genLog         *log.Logger
	genDumpPayload bool
)

// SetGenWriter installs the destination for generation dumps. A nil
// writer disables them.
func SetGenWriter(w io.Writer) {
	genMu.Lock()
	defer genMu.Unlock()
	if w == nil {
		genLog = nil
		return
	}
	genLog = log.New(w, "", log.LstdFlags)
}

// EnableGenPayloadDump toggles inclusion of raw HTTP payloads in the
// generation dump.
func EnableGenPayloadDump(enabled bool) {
	genMu.Lock()
	genDumpPayload = enabled
	genMu.Unlock()
}

type genSection struct {
	title string
	body  string
}

func logGen(kind, backend, purpose string, sections []genSection) {
	genMu.Lock()
	sink := genLog
	genMu.Unlock()
	if sink == nil {
		return
	}
	var b strings.Builder
	b.WriteString("[GEN][")
	b.WriteString(kind)
	b.WriteString("]")
	if backend != "" {
		b.WriteString("[")
		b.WriteString(backend)
		b.WriteString("]")
	}
	if purpose != "" {
		b.WriteString("[")
		b.WriteString(purpose)
		b.WriteString("]")
	}
	b.WriteString("\n")
	for _, sec := range sections {
		title := strings.TrimSpace(sec.title)
		if title == "" {
			title = "CONTENT"
		}
		b.WriteString("--- ")
		b.WriteString(title)
		b.WriteString(" ---\n")
		body := text.Truncate(sec.body, genDumpCap)
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString("=====\n")
	sink.Print(b.String())
}

// LogGenRequest records one outbound generation call: the rendered
// prompt and, when payload dumping is on, the wire payload.
func LogGenRequest(backend, purpose, prompt, payload string) {
	sections := []genSection{{title: "PROMPT", body: prompt}}
	if genDumpPayload && strings.TrimSpace(payload) != "" {
		sections = append(sections, genSection{title: "PAYLOAD", body: payload})
	}
	logGen("request", backend, purpose, sections)
}

// LogGenResponse records the raw completion text returned by the backend.
func LogGenResponse(backend, purpose, raw string) {
	logGen("response", backend, purpose, []genSection{{title: "RAW", body: raw}})
}
