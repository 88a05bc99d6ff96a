package styles

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/venom/internal/cachemanager"
	"github.com/zjrosen/venom/internal/task"
)

// ApplyTheme overrides colors by token and rebuilds the derived styles.
// Values must be #rgb or #rrggbb. Unknown tokens are rejected before any
// color changes.
func ApplyTheme(colors map[string]string) error {
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !slices.Contains(AllTokens, ColorToken(k)) {
			return fmt.Errorf("unknown color token: %s", k)
		}
		if !isValidHexColor(colors[k]) {
			return fmt.Errorf("invalid hex color for %s: %s", k, colors[k])
		}
	}

	for _, k := range keys {
		c := lipgloss.AdaptiveColor{Light: colors[k], Dark: colors[k]}
		if target := tokenTarget(ColorToken(k)); target != nil {
			*target = c
		}
	}

	rebuildStyles()
	labelStyles.Flush()
	return nil
}

func tokenTarget(t ColorToken) *lipgloss.AdaptiveColor {
	switch t {
	case TokenTextPrimary:
		return &TextPrimaryColor
	case TokenTextMuted:
		return &TextMutedColor
	case TokenBorderDefault:
		return &BorderDefaultColor
	case TokenBorderFocus:
		return &BorderFocusColor
	case TokenHeader:
		return &HeaderColor
	case TokenRowSelected:
		return &RowSelectedColor
	case TokenRowDone:
		return &RowDoneColor
	case TokenPriorityLow:
		return &PriorityLowColor
	case TokenPriorityMedium:
		return &PriorityMediumColor
	case TokenPriorityHigh:
		return &PriorityHighColor
	case TokenModeNormal:
		return &ModeNormalColor
	case TokenModeInsert:
		return &ModeInsertColor
	case TokenToastSuccess:
		return &ToastBorderSuccessColor
	case TokenToastError:
		return &ToastBorderErrorColor
	case TokenToastInfo:
		return &ToastBorderInfoColor
	case TokenToastWarn:
		return &ToastBorderWarnColor
	}
	return nil
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}

// labelStyles caches one style per label color string.
var labelStyles = cachemanager.NewInMemoryCacheManager[string, lipgloss.Style](
	"label-styles", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval)

// LabelStyle returns the foreground style for a label color. Named colors
// map to the 16 ANSI colors so they follow the terminal palette; RGB colors
// are used as given. Unknown names render unstyled.
func LabelStyle(c task.Color) lipgloss.Style {
	if c.IsZero() {
		return lipgloss.NewStyle()
	}
	key := c.String()
	if s, ok := labelStyles.Get(key); ok {
		return s
	}

	s := lipgloss.NewStyle()
	if c.IsRGB {
		s = s.Foreground(lipgloss.Color(key))
	} else if idx, ok := c.ANSI(); ok {
		s = s.Foreground(lipgloss.Color(strconv.Itoa(idx)))
	}
	labelStyles.Set(key, s, 0)
	return s
}

// PriorityStyle returns the title style for a priority.
func PriorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityLow:
		return lipgloss.NewStyle().Foreground(PriorityLowColor)
	case task.PriorityMedium:
		return lipgloss.NewStyle().Foreground(PriorityMediumColor)
	case task.PriorityHigh:
		return lipgloss.NewStyle().Foreground(PriorityHighColor).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(TextPrimaryColor)
	}
}
