package config

import (
	"fmt"
	"time"

	"whiteboard/domain/core/valueobjects"
)

// DomainConfig holds all configurable canvas rules and constants
type DomainConfig struct {
	// Node geometry
	TopBarHeight      float64
	MinNodeWidth      float64
	MinNodeHeight     float64
	DefaultNodeWidth  float64
	DefaultNodeHeight float64
	KindSizes         map[valueobjects.NodeKind]valueobjects.Size

	// Placement of new nodes without explicit coordinates
	RandomLocationFactor float64

	// Layout
	GridNodeSizeRatio    float64
	PanAnimationDuration time.Duration

	// Containers
	CanvasWidth           float64
	CanvasHeight          float64
	RootCollectionTitle   string
	MergedCollectionTitle string
	ScrapbookTitle        string
	ScrapbookSlotKinds    []valueobjects.NodeKind

	// Merge behaviour
	PreserveLinksOnMerge bool

	// Interaction
	MouseTrailMaxPoints int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		TopBarHeight:      20,
		MinNodeWidth:      50,
		MinNodeHeight:     50,
		DefaultNodeWidth:  300,
		DefaultNodeHeight: 350,
		KindSizes: map[valueobjects.NodeKind]valueobjects.Size{
			valueobjects.KindWebsite:  {Width: 500, Height: 300},
			valueobjects.KindRichText: {Width: 500, Height: 500},
		},

		RandomLocationFactor: 1.5,

		GridNodeSizeRatio:    0.9,
		PanAnimationDuration: 400 * time.Millisecond,

		CanvasWidth:           1280,
		CanvasHeight:          800,
		RootCollectionTitle:   "Canvas",
		MergedCollectionTitle: "Merged Collection",
		ScrapbookTitle:        "My Scrapbook",
		ScrapbookSlotKinds:    []valueobjects.NodeKind{valueobjects.KindWebsite, valueobjects.KindVideo},

		PreserveLinksOnMerge: false,

		MouseTrailMaxPoints: 100,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()
	config.PanAnimationDuration = 300 * time.Millisecond
	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// Longer trails and slower animation make interaction easier to inspect
	config.MouseTrailMaxPoints = 500
	config.PanAnimationDuration = time.Second

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// SizeFor returns the default size of a freshly created node of the given kind.
func (c *DomainConfig) SizeFor(kind valueobjects.NodeKind) valueobjects.Size {
	if s, ok := c.KindSizes[kind]; ok {
		return s
	}
	return valueobjects.Size{Width: c.DefaultNodeWidth, Height: c.DefaultNodeHeight}
}

// IsScrapbookSlot reports whether kind has a reserved single-occupancy slot.
func (c *DomainConfig) IsScrapbookSlot(kind valueobjects.NodeKind) bool {
	for _, k := range c.ScrapbookSlotKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.TopBarHeight <= 0 {
		return fmt.Errorf("top bar height must be positive, got %v", c.TopBarHeight)
	}
	if c.MinNodeWidth <= 0 || c.MinNodeHeight <= 0 {
		return fmt.Errorf("minimum node size must be positive, got %vx%v", c.MinNodeWidth, c.MinNodeHeight)
	}
	if c.GridNodeSizeRatio <= 0 || c.GridNodeSizeRatio > 1 {
		return fmt.Errorf("grid node size ratio must be in (0, 1], got %v", c.GridNodeSizeRatio)
	}
	if c.RandomLocationFactor <= 0 {
		return fmt.Errorf("random location factor must be positive, got %v", c.RandomLocationFactor)
	}
	if c.MouseTrailMaxPoints < 0 {
		return fmt.Errorf("mouse trail size cannot be negative, got %d", c.MouseTrailMaxPoints)
	}
	for _, k := range c.ScrapbookSlotKinds {
		if !k.IsValid() {
			return fmt.Errorf("invalid scrapbook slot kind %q", k)
		}
	}
	return nil
}
