package systems

// System IDs, in per-tick execution order. Perf tracking and the HUD use them.
const (
	IDPlayer      = "player"
	IDGravity     = "gravity"
	IDPopulation  = "population"
	IDEvents      = "events"
	IDPhysics     = "physics"
	IDConsumption = "consumption"
	IDEffects     = "effects"
)

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string
	Name        string
	Description string
	Category    string // "core", "spawn" or "visual"
}

// SystemRegistry holds metadata about all systems.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{byID: make(map[string]SystemInfo)}
	reg.registerDefaults()
	return reg
}

func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: IDPlayer, Name: "Player", Description: "Steers and bounces the black hole", Category: "core"})
	r.Register(SystemInfo{ID: IDGravity, Name: "Gravity", Description: "Pulls nearby objects inward", Category: "core"})
	r.Register(SystemInfo{ID: IDPopulation, Name: "Population", Description: "Depletion and ambient wall spawns", Category: "spawn"})
	r.Register(SystemInfo{ID: IDEvents, Name: "Events", Description: "Schedules and runs procedural events", Category: "spawn"})
	r.Register(SystemInfo{ID: IDPhysics, Name: "Physics", Description: "Drift, wall reflection and speed cap", Category: "core"})
	r.Register(SystemInfo{ID: IDConsumption, Name: "Consumption", Description: "Eat rule, shrink and removal", Category: "core"})
	r.Register(SystemInfo{ID: IDEffects, Name: "Effects", Description: "Fade-ins, particles and backdrop", Category: "visual"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	if _, ok := r.byID[info.ID]; !ok {
		r.systems = append(r.systems, info)
	}
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID, or the ID itself.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems in execution order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in execution order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
