package views

import (
	"context"

	"github.com/lbriand/reverb/internal/api"
	"github.com/lbriand/reverb/internal/errmsg"
)

// Home is the dashboard view: most played songs plus the artist and
// channel groupings that open their own context views.
type Home struct {
	gw        Gateway
	dashboard api.Dashboard
	loaded    bool
	err       string
}

// NewHome creates an empty home view.
func NewHome(gw Gateway) *Home {
	return &Home{gw: gw}
}

// Dashboard returns the loaded payload.
func (h *Home) Dashboard() api.Dashboard { return h.dashboard }

// Loaded reports whether a load has completed successfully.
func (h *Home) Loaded() bool { return h.loaded }

// Err returns the user-facing load failure message.
func (h *Home) Err() string { return h.err }

// Load fetches the dashboard. Failures record a retryable message.
func (h *Home) Load(ctx context.Context) {
	d, err := h.gw.FetchDashboard(ctx)
	if err != nil {
		h.err = errmsg.Format(errmsg.OpDashboardLoad, err)
		return
	}
	h.dashboard = d
	h.loaded = true
	h.err = ""
}

// ArtistView opens the context view for one dashboard artist row.
func (h *Home) ArtistView(a api.ArtistSummary) *View {
	return Artist(h.gw, a.Name)
}

// ChannelView opens the context view for one dashboard channel row.
func (h *Home) ChannelView(c api.ChannelSummary) *View {
	return Channel(h.gw, c.ID, c.Name)
}
