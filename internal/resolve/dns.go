package resolve

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/multierr"
)

const resolvConfPath = "/etc/resolv.conf"

// DNS resolves addresses with PTR queries against a fixed server list. Each
// server is tried in order until one answers.
type DNS struct {
	servers  []string
	client   *dns.Client
	hostname func() (string, error)
}

// NewDNS returns a PTR resolver. Servers may omit the port; with no servers
// the nameservers in /etc/resolv.conf are used.
func NewDNS(servers []string, timeout time.Duration) (*DNS, error) {
	if len(servers) == 0 {
		cc, err := dns.ClientConfigFromFile(resolvConfPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", resolvConfPath, err)
		}
		for _, s := range cc.Servers {
			servers = append(servers, net.JoinHostPort(s, cc.Port))
		}
	}
	if len(servers) == 0 {
		return nil, fmt.Errorf("no DNS servers configured")
	}

	normalized := make([]string, 0, len(servers))
	for _, s := range servers {
		normalized = append(normalized, withPort(s))
	}

	return &DNS{
		servers:  normalized,
		client:   &dns.Client{Net: "udp", Timeout: withDefaultTimeout(timeout)},
		hostname: osHostname,
	}, nil
}

// Servers returns the host:port list queried
func (d *DNS) Servers() []string {
	return append([]string(nil), d.servers...)
}

// LocalHostname returns the kernel's hostname
func (d *DNS) LocalHostname(context.Context) (string, error) {
	return d.hostname()
}

// HostnameFor returns the first PTR target for addr
func (d *DNS) HostnameFor(ctx context.Context, addr netip.Addr) (string, error) {
	name, err := dns.ReverseAddr(addr.Unmap().String())
	if err != nil {
		return "", err
	}

	msg := new(dns.Msg)
	msg.SetQuestion(name, dns.TypePTR)

	var errs error
	for _, server := range d.servers {
		in, _, err := d.client.ExchangeContext(ctx, msg, server)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", server, err))
			continue
		}
		if in.Rcode != dns.RcodeSuccess {
			return "", fmt.Errorf("%w: %s answered %s", ErrNotFound, server, dns.RcodeToString[in.Rcode])
		}
		for _, rr := range in.Answer {
			if ptr, ok := rr.(*dns.PTR); ok {
				return trimRoot(ptr.Ptr), nil
			}
		}
		return "", ErrNotFound
	}
	return "", errs
}

func withPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(server, "53")
}
