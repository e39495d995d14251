package provider

import (
	"sync"

	// commonlog is a required dependency of github.com/tliron/glsp. We
	// silence it once, the first time this package touches glsp types,
	// because this core uses slog for all of its own logging
	// (internal/trace). The blank import of the "simple" backend is
	// required by glsp at runtime even when commonlog is silenced.
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var silenceCommonlogOnce sync.Once

func silenceCommonlog() {
	silenceCommonlogOnce.Do(func() {
		commonlog.Configure(0, nil)
	})
}
