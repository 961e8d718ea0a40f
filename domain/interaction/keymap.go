package interaction

import (
	"fmt"
	"sort"
	"strings"
)

// Intent is a named user action bound to a key.
type Intent string

const (
	IntentCreate        Intent = "create"
	IntentDelete        Intent = "delete"
	IntentDeselect      Intent = "deselect"
	IntentNudgeLeftOut  Intent = "nudge-left-out"
	IntentNudgeLeftIn   Intent = "nudge-left-in"
	IntentNudgeRightOut Intent = "nudge-right-out"
	IntentNudgeRightIn  Intent = "nudge-right-in"
	IntentNudgeTopOut   Intent = "nudge-top-out"
	IntentNudgeTopIn    Intent = "nudge-top-in"
	IntentNudgeBotOut   Intent = "nudge-bottom-out"
	IntentNudgeBotIn    Intent = "nudge-bottom-in"
	IntentNextImage     Intent = "next-image"
	IntentPrevImage     Intent = "prev-image"
	IntentSave          Intent = "save"
	IntentZoomIn        Intent = "zoom-in"
	IntentZoomOut       Intent = "zoom-out"
	IntentScrollLeft    Intent = "scroll-left"
	IntentScrollRight   Intent = "scroll-right"
	IntentScrollUp      Intent = "scroll-up"
	IntentScrollDown    Intent = "scroll-down"
)

var knownIntents = map[Intent]Nudge{
	IntentCreate:        NudgeNone,
	IntentDelete:        NudgeNone,
	IntentDeselect:      NudgeNone,
	IntentNudgeLeftOut:  NudgeLeftOut,
	IntentNudgeLeftIn:   NudgeLeftIn,
	IntentNudgeRightOut: NudgeRightOut,
	IntentNudgeRightIn:  NudgeRightIn,
	IntentNudgeTopOut:   NudgeTopOut,
	IntentNudgeTopIn:    NudgeTopIn,
	IntentNudgeBotOut:   NudgeBottomOut,
	IntentNudgeBotIn:    NudgeBottomIn,
	IntentNextImage:     NudgeNone,
	IntentPrevImage:     NudgeNone,
	IntentSave:          NudgeNone,
	IntentZoomIn:        NudgeNone,
	IntentZoomOut:       NudgeNone,
	IntentScrollLeft:    NudgeNone,
	IntentScrollRight:   NudgeNone,
	IntentScrollUp:      NudgeNone,
	IntentScrollDown:    NudgeNone,
}

// Nudge returns the edge nudge bound to the intent, or NudgeNone.
func (i Intent) Nudge() Nudge { return knownIntents[i] }

// Keymap binds Tk keysyms to intents.
type Keymap map[string]Intent

// ParseKeymap validates a keysym -> intent table.
func ParseKeymap(raw map[string]string) (Keymap, error) {
	km := make(Keymap, len(raw))
	var unknown []string
	for key, name := range raw {
		intent := Intent(strings.TrimSpace(strings.ToLower(name)))
		if _, ok := knownIntents[intent]; !ok {
			unknown = append(unknown, fmt.Sprintf("%s=%s", key, name))
			continue
		}
		km[strings.TrimSpace(key)] = intent
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return km, fmt.Errorf("unknown key intents: %s", strings.Join(unknown, ", "))
	}
	return km, nil
}

// Lookup returns the intent bound to keysym.
func (k Keymap) Lookup(keysym string) (Intent, bool) {
	i, ok := k[keysym]
	return i, ok
}
