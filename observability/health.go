package observability

import "context"

// HealthStatus grades a component or the service as a whole.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// severity ranks statuses so the worst component decides the service grade.
var severity = map[HealthStatus]int{
	HealthStatusUp:       0,
	HealthStatusDegraded: 1,
	HealthStatusDown:     2,
}

// HealthChecker is anything that can grade its own availability on demand.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}

// Health is one component's report. For an authentication strategy this
// usually reflects provider reachability, such as whether the discovery
// document has been loaded.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// Healthy reports the named component as up.
func Healthy(name string) Health {
	return Health{Name: name, Status: HealthStatusUp}
}

// Degraded reports the named component as degraded with an explanation.
func Degraded(name, message string) Health {
	return Health{Name: name, Status: HealthStatusDegraded, Message: message}
}

// Unhealthy reports the named component as down with an explanation.
func Unhealthy(name, message string) Health {
	return Health{Name: name, Status: HealthStatusDown, Message: message}
}

// ServiceHealth aggregates component reports into a service-level grade.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	Components []Health     `json:"components,omitempty"`
}

// NewServiceHealth starts a report with status up and no components.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{Service: service, Status: HealthStatusUp, Version: version}
}

// AddComponent appends a component report. The service grade only ever
// worsens: a later healthy component never masks an earlier down one.
func (s *ServiceHealth) AddComponent(h Health) {
	s.Components = append(s.Components, h)
	if severity[h.Status] > severity[s.Status] {
		s.Status = h.Status
	}
}
