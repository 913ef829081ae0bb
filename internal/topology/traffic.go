package topology

import "time"

// HTTPSListener terminates TLS on the load balancer.
type HTTPSListener struct {
	Port           int
	CertificateARN string
	RedirectHTTP   bool
}

// HealthCheck is the target group health check.
type HealthCheck struct {
	Path             string
	Interval         time.Duration
	Timeout          time.Duration
	HealthyThreshold int
	HealthyCodes     string
}

// TrafficDistribution is the load balancer in front of the compute tier.
type TrafficDistribution struct {
	Name           string
	Public         bool
	ListenerPort   int
	HTTPS          *HTTPSListener
	Target         string
	TargetPort     int
	Policy         string
	Tier           Tier
	HealthCheck    HealthCheck
	StickySessions bool
}

// OutputName is the stack output carrying the load balancer DNS name.
const OutputName = "LoadBalancerDNS"

func (t TrafficDistribution) references() []string {
	return []string{NodeNetwork, PolicyNode(t.Policy), t.Target}
}
