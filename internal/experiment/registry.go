package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/heatlab/internal/config"
	"github.com/san-kum/heatlab/internal/material"
	"github.com/san-kum/heatlab/internal/profile"
	"github.com/san-kum/heatlab/internal/solver"
)

// Registry maps config names onto material models, initial profiles,
// and linear solvers.
type Registry struct {
	materials map[string]func(config.MaterialConfig) material.Model
	profiles  map[string]func(cfg *config.Config) profile.Profile
	solvers   map[string]func() solver.LinearSolver
}

func NewRegistry() *Registry {
	r := &Registry{
		materials: make(map[string]func(config.MaterialConfig) material.Model),
		profiles:  make(map[string]func(*config.Config) profile.Profile),
		solvers:   make(map[string]func() solver.LinearSolver),
	}

	r.materials["constant"] = func(p config.MaterialConfig) material.Model { return material.Constant(p.K0) }
	r.materials["rational"] = func(p config.MaterialConfig) material.Model { return material.Rational(p.K0) }
	r.materials["quadratic"] = func(p config.MaterialConfig) material.Model { return material.Quadratic(p.K0) }
	r.materials["exponential"] = func(p config.MaterialConfig) material.Model { return material.Exponential(p.K0, p.Alpha) }

	r.profiles["gaussian"] = func(c *config.Config) profile.Profile {
		return profile.Gaussian(c.ProfileParams.Center, c.ProfileParams.Width, c.ProfileParams.Amp)
	}
	r.profiles["triangle"] = func(c *config.Config) profile.Profile {
		return profile.Triangle(c.ProfileParams.Center, c.ProfileParams.Width, c.ProfileParams.Amp)
	}
	r.profiles["sine"] = func(c *config.Config) profile.Profile {
		return profile.Sine(c.A, c.B, c.ProfileParams.Mode, c.ProfileParams.Amp)
	}
	r.profiles["plateau"] = func(c *config.Config) profile.Profile {
		half := c.ProfileParams.Width
		return profile.Plateau(c.ProfileParams.Center-half, c.ProfileParams.Center+half, c.ProfileParams.Amp)
	}

	r.solvers["dense"] = func() solver.LinearSolver { return solver.NewDense() }
	r.solvers["tridiag"] = func() solver.LinearSolver { return solver.NewTridiag() }

	return r
}

func (r *Registry) GetMaterial(name string, params config.MaterialConfig) (material.Model, error) {
	fn, ok := r.materials[name]
	if !ok {
		return material.Model{}, fmt.Errorf("unknown material: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) GetProfile(cfg *config.Config) (profile.Profile, error) {
	fn, ok := r.profiles[cfg.Profile]
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s", cfg.Profile)
	}
	return fn(cfg), nil
}

func (r *Registry) GetSolver(name string) (solver.LinearSolver, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMaterials() []string {
	names := make([]string, 0, len(r.materials))
	for name := range r.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListProfiles() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
