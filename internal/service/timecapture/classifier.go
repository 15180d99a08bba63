// Package timecapture converts raw activity signals into suggested time
// entries: it classifies signals, detects idle gaps, groups contiguous
// work into sessions, and scores each session's confidence. All of it is
// pure computation; the Service type at the package root is the only part
// that touches storage.
package timecapture

import (
	"sort"
	"strings"

	"github.com/heartmarshall/billops-backend/internal/domain"
)

// workApplications maps known application names (lowercase) to an
// activity type.
var workApplications = map[string]domain.ActivityType{
	"vscode":    domain.ActivityTypeFocusedWork,
	"jetbrains": domain.ActivityTypeFocusedWork,
	"sublime":   domain.ActivityTypeFocusedWork,
	"chrome":    domain.ActivityTypeResearch,
	"firefox":   domain.ActivityTypeResearch,
	"zoom":      domain.ActivityTypeMeeting,
	"teams":     domain.ActivityTypeMeeting,
	"slack":     domain.ActivityTypeCommunication,
}

// workDomains are matched as substrings of the signal's domain.
var workDomains = []string{
	"github.com",
	"stackoverflow.com",
	"trello.com",
	"slack.com",
}

// Classify maps a signal to an activity type. Total function: unknown
// apps fall through to domain matching, then to the raw signal kind, and
// finally default to personal.
func Classify(sig domain.ActivitySignal) domain.ActivityType {
	if at, ok := workApplications[sig.AppName()]; ok {
		return at
	}

	if d := sig.DomainName(); d != "" {
		for _, wd := range workDomains {
			if strings.Contains(d, wd) {
				return domain.ActivityTypeResearch
			}
		}
	}

	if strings.Contains(strings.ToLower(sig.Kind), "keyboard") {
		return domain.ActivityTypeFocusedWork
	}

	return domain.ActivityTypePersonal
}

// ClassifySource maps a raw source string to a SourceKind, defaulting to
// unknown.
func ClassifySource(source string) domain.SourceKind {
	s := strings.ToLower(source)
	switch {
	case strings.Contains(s, "keyboard"):
		return domain.SourceKindKeyboard
	case strings.Contains(s, "mouse"):
		return domain.SourceKindMouse
	case strings.Contains(s, "window"):
		return domain.SourceKindWindow
	}
	return domain.SourceKindUnknown
}

// IsWorkRelated reports whether a signal classifies as anything other
// than personal activity.
func IsWorkRelated(sig domain.ActivitySignal) bool {
	return Classify(sig) != domain.ActivityTypePersonal
}

// ContextData extracts the structured context for a group of signals:
// distinct sorted applications and domains, an activity-type histogram,
// and the histogram's mode (ties break by first appearance order).
func ContextData(signals []domain.ActivitySignal) domain.EntryContext {
	appSet := make(map[string]struct{})
	domainSet := make(map[string]struct{})
	dist := make(map[string]int)
	var typeOrder []string

	for _, sig := range signals {
		if app := sig.AppName(); app != "" {
			appSet[app] = struct{}{}
		}
		if d := sig.DomainName(); d != "" {
			domainSet[d] = struct{}{}
		}
		at := Classify(sig).String()
		if _, seen := dist[at]; !seen {
			typeOrder = append(typeOrder, at)
		}
		dist[at]++
	}

	ctx := domain.EntryContext{
		Applications:         sortedKeys(appSet),
		Domains:              sortedKeys(domainSet),
		ActivityDistribution: dist,
	}

	if primary, ok := dominantType(dist, typeOrder); ok {
		ctx.PrimaryActivity = &primary
	}

	return ctx
}

// dominantType returns the histogram mode. typeOrder carries first-seen
// order so ties resolve deterministically.
func dominantType(dist map[string]int, typeOrder []string) (string, bool) {
	best := ""
	bestCount := 0
	for _, at := range typeOrder {
		if dist[at] > bestCount {
			best = at
			bestCount = dist[at]
		}
	}
	return best, bestCount > 0
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
