package store

import (
	"github.com/searchpro/settings/engine/core"
)

// Typed factory defaults for the Search Pro widget configuration. The JSON
// tags define the tree shape handlers address by path.

type GeneralDefaults struct {
	Enabled    bool   `json:"enabled"`
	AutoHide   bool   `json:"autoHide"`
	MobileMode string `json:"mobileMode"`
}

type SearchBarPosition struct {
	Top   int `json:"top"`
	Right int `json:"right"`
}

type SearchBarDefaults struct {
	Width         int               `json:"width"`
	Placeholder   string            `json:"placeholder"`
	MinCharacters int               `json:"minCharacters"`
	Position      SearchBarPosition `json:"position"`
}

type AppearanceColors struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Highlight  string `json:"highlight"`
}

type AppearanceDefaults struct {
	Colors       AppearanceColors `json:"colors"`
	BorderRadius int              `json:"borderRadius"`
	FontFamily   string           `json:"fontFamily"`
}

type DisplayDefaults struct {
	ShowGroupHeaders bool `json:"showGroupHeaders"`
	ShowIcons        bool `json:"showIcons"`
	ShowResultCount  bool `json:"showResultCount"`
	MaxResults       int  `json:"maxResults"`
}

type ContentDefaults struct {
	IncludePanoramas bool `json:"includePanoramas"`
	IncludeHotspots  bool `json:"includeHotspots"`
	IncludeMedia     bool `json:"includeMedia"`
	UseCustomLabels  bool `json:"useCustomLabels"`
}

type FilteringDefaults struct {
	Mode              string   `json:"mode"`
	AllowedValues     []string `json:"allowedValues"`
	BlacklistedValues []string `json:"blacklistedValues"`
}

type DataSourcesDefaults struct {
	UseTourData    bool   `json:"useTourData"`
	ExternalURL    string `json:"externalUrl"`
	RefreshSeconds int    `json:"refreshSeconds"`
}

type AnimationsDefaults struct {
	Enabled    bool   `json:"enabled"`
	DurationMS int    `json:"durationMs"`
	Easing     string `json:"easing"`
}

type AdvancedDefaults struct {
	DebugMode         bool `json:"debugMode"`
	CacheResults      bool `json:"cacheResults"`
	KeyboardShortcuts bool `json:"keyboardShortcuts"`
}

type WidgetDefaults struct {
	General     GeneralDefaults     `json:"general"`
	SearchBar   SearchBarDefaults   `json:"searchBar"`
	Appearance  AppearanceDefaults  `json:"appearance"`
	Display     DisplayDefaults     `json:"display"`
	Content     ContentDefaults     `json:"content"`
	Filtering   FilteringDefaults   `json:"filtering"`
	DataSources DataSourcesDefaults `json:"dataSources"`
	Animations  AnimationsDefaults  `json:"animations"`
	Advanced    AdvancedDefaults    `json:"advanced"`
}

func defaultWidgetConfig() WidgetDefaults {
	return WidgetDefaults{
		General: GeneralDefaults{
			Enabled:    true,
			AutoHide:   false,
			MobileMode: "overlay",
		},
		SearchBar: SearchBarDefaults{
			Width:         350,
			Placeholder:   "Search...",
			MinCharacters: 2,
			Position:      SearchBarPosition{Top: 70, Right: 70},
		},
		Appearance: AppearanceDefaults{
			Colors: AppearanceColors{
				Background: "#ffffff",
				Text:       "#1a1a1a",
				Highlight:  "#3b82f6",
			},
			BorderRadius: 8,
			FontFamily:   "inherit",
		},
		Display: DisplayDefaults{
			ShowGroupHeaders: true,
			ShowIcons:        true,
			ShowResultCount:  true,
			MaxResults:       20,
		},
		Content: ContentDefaults{
			IncludePanoramas: true,
			IncludeHotspots:  true,
			IncludeMedia:     false,
			UseCustomLabels:  false,
		},
		Filtering: FilteringDefaults{
			Mode:              "none",
			AllowedValues:     []string{},
			BlacklistedValues: []string{},
		},
		DataSources: DataSourcesDefaults{
			UseTourData:    true,
			ExternalURL:    "",
			RefreshSeconds: 0,
		},
		Animations: AnimationsDefaults{
			Enabled:    true,
			DurationMS: 200,
			Easing:     "ease-out",
		},
		Advanced: AdvancedDefaults{
			DebugMode:         false,
			CacheResults:      true,
			KeyboardShortcuts: true,
		},
	}
}

// FactoryDefaults generates a fresh default configuration tree. Pure and
// deterministic; every call returns an independent tree.
func FactoryDefaults() core.ConfigTree {
	m, err := core.AsMapDefault(defaultWidgetConfig())
	if err != nil {
		// The default struct is static and always marshals; reaching this
		// would be a programming error.
		panic(err)
	}
	return m
}
