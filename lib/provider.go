package lib

import (
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/sirupsen/logrus"
)

// STSClient is the subset of the STS API used by RoleProvider.
type STSClient interface {
	AssumeRole(*sts.AssumeRoleInput) (*sts.AssumeRoleOutput, error)
}

const (
	// AssumeRoleDuration is the validity requested for every session.
	AssumeRoleDuration = time.Hour

	// RenewalWindow is how long before expiry a cached session is considered
	// stale and renewed. Downstream services keep accepting the old session
	// until its hard expiry, so renewing early keeps in-flight requests safe.
	RenewalWindow = time.Minute

	defaultSessionNamePrefix = "aws-role-provider"
)

// RoleProviderOptions are the optional knobs for NewRoleProvider. The zero
// value is fine.
type RoleProviderOptions struct {
	// SessionNamePrefix is combined with a timestamp to form the role session
	// name STS records in audit trails.
	SessionNamePrefix string
	Clock             Clock
	Logger            *logrus.Entry
}

func (o RoleProviderOptions) ApplyDefaults() RoleProviderOptions {
	if o.SessionNamePrefix == "" {
		o.SessionNamePrefix = defaultSessionNamePrefix
	}
	if o.Clock == nil {
		o.Clock = SystemClock()
	}
	if o.Logger == nil {
		o.Logger = logrus.WithField("prefix", "lib/role-provider")
	}
	return o
}

// RoleProvider caches the temporary credentials for a single assumed role,
// renewing them shortly before they expire. Renewal is lazy: it happens on
// the Credentials call that finds the cache stale, not on a timer.
//
// Renewal failures are never surfaced to callers. If STS is unreachable the
// last good credentials are served, even past the renewal window; a session
// that is past the window is usually still accepted downstream until its hard
// expiry, and breaking in-flight I/O over a transient STS outage is worse
// than serving a soon-to-expire session.
type RoleProvider struct {
	roleARN           string
	sessionNamePrefix string
	client            STSClient
	clock             Clock
	log               *logrus.Entry

	// mu guards current and serializes renewals, so concurrent callers never
	// observe a half-written credential and at most one renewal is in flight.
	mu      sync.Mutex
	current *SessionCredentials
}

// NewRoleProvider returns a provider that assumes roleARN via client. An
// empty roleARN is valid and yields a provider that declines to provide
// credentials, which callers treat as "use the default credential chain".
// The role is fixed for the lifetime of the provider.
func NewRoleProvider(client STSClient, roleARN string, opts RoleProviderOptions) *RoleProvider {
	opts = opts.ApplyDefaults()
	return &RoleProvider{
		roleARN:           roleARN,
		sessionNamePrefix: opts.SessionNamePrefix,
		client:            client,
		clock:             opts.Clock,
		log:               opts.Logger,
	}
}

// RoleARN returns the role this provider assumes, empty if none.
func (p *RoleProvider) RoleARN() string {
	return p.roleARN
}

// Credentials returns the current session credentials, starting or renewing
// the session first if it is missing or inside the renewal window.
//
// It returns nil when no role is configured, and when no session has ever
// been started because every attempt failed. It never returns an error: a
// failed renewal logs a warning and the previous credentials are returned
// instead.
func (p *RoleProvider) Credentials() *SessionCredentials {
	if p.roleARN == "" {
		p.log.Debug("no role configured, declining to provide credentials")
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.needsNewSession() {
		p.startSession()
	}
	return p.current
}

// Refresh starts a new session regardless of how fresh the cached one is,
// with the same failure containment as Credentials. It is meant for
// host-driven periodic revalidation; callers read the result with a
// subsequent Credentials call.
func (p *RoleProvider) Refresh() {
	if p.roleARN == "" {
		return
	}

	p.log.Debug("refresh requested")
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startSession()
}

// Stale reports whether the next Credentials call would attempt a renewal.
func (p *RoleProvider) Stale() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.needsNewSession()
}

// needsNewSession is the freshness predicate. Callers must hold p.mu.
func (p *RoleProvider) needsNewSession() bool {
	if p.current == nil {
		p.log.Debug("no session credentials yet, needs new session")
		return true
	}
	if p.clock.Now().Before(p.current.Expiration.Add(-RenewalWindow)) {
		return false
	}
	p.log.Debug("session credentials inside renewal window, needs new session")
	return true
}

// startSession assumes the role and swaps in the returned credentials. On any
// failure the cached credentials are left untouched. Callers must hold p.mu.
func (p *RoleProvider) startSession() {
	sessionName := fmt.Sprintf("%s-%d", p.sessionNamePrefix, p.clock.Now().UnixNano())
	resp, err := p.client.AssumeRole(&sts.AssumeRoleInput{
		RoleArn:         aws.String(p.roleARN),
		RoleSessionName: aws.String(sessionName),
		DurationSeconds: aws.Int64(int64(AssumeRoleDuration.Seconds())),
	})
	if err != nil {
		p.log.WithError(err).Warn("unable to start a new session, keeping previous session credentials")
		return
	}
	if resp.Credentials == nil {
		p.log.Warn("assume role returned no credentials, keeping previous session credentials")
		return
	}

	p.current = &SessionCredentials{
		AccessKeyID:     aws.StringValue(resp.Credentials.AccessKeyId),
		SecretAccessKey: aws.StringValue(resp.Credentials.SecretAccessKey),
		SessionToken:    aws.StringValue(resp.Credentials.SessionToken),
		Expiration:      aws.TimeValue(resp.Credentials.Expiration),
	}
	p.log.WithFields(logrus.Fields{
		"role":       p.roleARN,
		"expiration": p.current.Expiration,
	}).Infof("started session %s", sessionName)
}
