package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
	"github.com/opd-ai/go-kanyonbird/pkg/physics"
)

// Contact tags.
const (
	TagTarget  = "target"
	TagScenery = "scenery"
)

// wallThickness is how far the canyon walls, floor and ceiling extend past
// their inner faces.
const wallThickness = 1000.0

// openSky bounds boxes that would otherwise reach an open ceiling.
const openSky = 1e9

// Obstacle is a tagged box in the course.
type Obstacle struct {
	Name string
	Tag  string
	Box  physics.Box
}

// Contact is an obstacle the bird is touching.
type Contact struct {
	Obstacle
	physics.CollisionResult
}

// IsTarget reports whether touching this obstacle wins the session.
func (c Contact) IsTarget() bool {
	return c.Tag == TagTarget
}

// Course is the canyon: walls on both sides, a floor, an optional ceiling,
// the scenery placed along it and the target box at its end.
type Course struct {
	Length    float64
	obstacles []Obstacle
}

// NewCourse lays out the course from configuration. The target is checked
// first so a tick touching both the target and scenery counts as a win.
func NewCourse(cfg config.CourseConfig) *Course {
	top := openSky
	if cfg.Ceiling > cfg.Floor {
		top = cfg.Ceiling
	}
	end := cfg.Length + cfg.TargetDepth

	c := &Course{Length: cfg.Length}
	c.add("target", TagTarget,
		mgl64.Vec3{-cfg.HalfWidth, cfg.Floor, cfg.Length},
		mgl64.Vec3{cfg.HalfWidth, top, end},
	)
	c.add("floor", TagScenery,
		mgl64.Vec3{-cfg.HalfWidth - wallThickness, cfg.Floor - wallThickness, -wallThickness},
		mgl64.Vec3{cfg.HalfWidth + wallThickness, cfg.Floor, end + wallThickness},
	)
	c.add("right wall", TagScenery,
		mgl64.Vec3{cfg.HalfWidth, cfg.Floor, -wallThickness},
		mgl64.Vec3{cfg.HalfWidth + wallThickness, top, end + wallThickness},
	)
	c.add("left wall", TagScenery,
		mgl64.Vec3{-cfg.HalfWidth - wallThickness, cfg.Floor, -wallThickness},
		mgl64.Vec3{-cfg.HalfWidth, top, end + wallThickness},
	)
	if top != openSky {
		c.add("ceiling", TagScenery,
			mgl64.Vec3{-cfg.HalfWidth - wallThickness, top, -wallThickness},
			mgl64.Vec3{cfg.HalfWidth + wallThickness, top + wallThickness, end + wallThickness},
		)
	}
	for _, o := range cfg.Obstacles {
		tag := o.Tag
		if tag == "" {
			tag = TagScenery
		}
		c.add(o.Name, tag, mgl64.Vec3(o.Min), mgl64.Vec3(o.Max))
	}
	return c
}

func (c *Course) add(name, tag string, lo, hi mgl64.Vec3) {
	c.obstacles = append(c.obstacles, Obstacle{Name: name, Tag: tag, Box: physics.Box{Min: lo, Max: hi}})
}

// Obstacles returns every box in the course, target first.
func (c *Course) Obstacles() []Obstacle {
	return c.obstacles
}

// Contacts returns every obstacle the sphere overlaps, in course order.
func (c *Course) Contacts(s physics.Sphere) []Contact {
	var contacts []Contact
	for _, o := range c.obstacles {
		if r := physics.CheckSphereBox(s, o.Box); r.Collided {
			contacts = append(contacts, Contact{Obstacle: o, CollisionResult: r})
		}
	}
	return contacts
}

// FirstContact returns the first obstacle the sphere overlaps.
func (c *Course) FirstContact(s physics.Sphere) (Contact, bool) {
	for _, o := range c.obstacles {
		if r := physics.CheckSphereBox(s, o.Box); r.Collided {
			return Contact{Obstacle: o, CollisionResult: r}, true
		}
	}
	return Contact{}, false
}
