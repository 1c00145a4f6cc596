package texture

import (
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/wolfcast/internal/game/world"
	"github.com/Faultbox/wolfcast/internal/logger"
)

// Loader reads raw asset bytes by path.
type Loader interface {
	Load(path string) ([]byte, error)
}

// extensions are tried in order for every texture name.
var extensions = []string{".png", ".bmp", ".tga"}

// Provider serves wall and sprite textures by code and name. Lookups never
// fail: anything that cannot be loaded is replaced by a fallback, and the
// miss is logged once.
type Provider struct {
	loader Loader
	size   int

	mu      sync.Mutex
	walls   map[world.Cell]*image.RGBA
	sprites map[string]*image.RGBA
}

// NewProvider creates a provider. loader may be nil, which yields only
// fallbacks.
func NewProvider(loader Loader, size int) *Provider {
	if size <= 0 {
		size = DefaultSize
	}
	return &Provider{
		loader:  loader,
		size:    size,
		walls:   make(map[world.Cell]*image.RGBA),
		sprites: make(map[string]*image.RGBA),
	}
}

// Size is the edge length of every texture.
func (p *Provider) Size() int { return p.size }

// wallName maps a code to its file stem.
func wallName(code world.Cell) string {
	if code == world.CellDoor {
		return "door"
	}
	return fmt.Sprintf("%d", code)
}

// Wall returns the texture for a wall code.
func (p *Provider) Wall(code world.Cell) image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()

	if img, ok := p.walls[code]; ok {
		return img
	}
	img, err := p.load("textures/" + wallName(code))
	if err != nil {
		logger.Warn("wall texture missing, using solid colour",
			zap.Uint8("code", uint8(code)), zap.Error(err))
		img = FallbackWall(uint8(code), p.size)
	}
	p.walls[code] = img
	return img
}

// Sprite returns the texture for a sprite name, with black keyed out.
func (p *Provider) Sprite(name string) image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()

	if img, ok := p.sprites[name]; ok {
		return img
	}
	img, err := p.load("sprites/" + name)
	if err != nil {
		logger.Warn("sprite texture missing, using disc",
			zap.String("name", name), zap.Error(err))
		img = FallbackSprite(name, p.size)
	} else {
		ApplyColorKey(img, SpriteKey)
	}
	p.sprites[name] = img
	return img
}

// Preload resolves the given codes and names up front so the first frame
// does not decode.
func (p *Provider) Preload(codes []world.Cell, names []string) {
	for _, c := range codes {
		p.Wall(c)
	}
	for _, n := range names {
		p.Sprite(n)
	}
	logger.Info("textures loaded", zap.Int("walls", len(codes)), zap.Int("sprites", len(names)))
}

func (p *Provider) load(stem string) (*image.RGBA, error) {
	if p.loader == nil {
		return nil, fmt.Errorf("no loader for %s", stem)
	}
	var lastErr error
	for _, ext := range extensions {
		data, err := p.loader.Load(stem + ext)
		if err != nil {
			lastErr = err
			continue
		}
		img, err := Decode(stem+ext, data)
		if err != nil {
			return nil, err
		}
		return Normalize(img, p.size), nil
	}
	return nil, lastErr
}
