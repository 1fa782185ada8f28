package consul

import (
	"context"
	"strings"

	"github.com/hashicorp/consul/api"
)

// ConsulBackend stores backup objects in the Consul KV store under a
// configurable prefix.
//
// Limitations:
// - Consul KV has a 512KB limit per value, so this backend only suits
//   hosts whose unsaved buffers stay small
type ConsulBackend struct {
	client *api.Client
	kv     *api.KV

	config *ConsulBackendConfig
}

// ConsulBackendConfig contains configuration options for the Consul backend.
type ConsulBackendConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Prefix for all keys in Consul KV (default: "backups")
	Prefix string
}

func NewConsulBackend(config *ConsulBackendConfig) (*ConsulBackend, error) {
	if config == nil {
		config = &ConsulBackendConfig{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}
	if config.Prefix == "" {
		config.Prefix = "backups"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulBackend{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend.
func (*ConsulBackend) Name() string {
	return "consul"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (cb *ConsulBackend) Open(ctx context.Context) error {
	// Nothing to initialize - Consul handles connections
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (cb *ConsulBackend) Close(ctx context.Context) error {
	// Nothing to clean up - Consul client is stateless
	return nil
}

// buildKey constructs the full Consul KV key for a scheme/key pair.
func (cb *ConsulBackend) buildKey(scheme, key string) string {
	return cb.keyPrefix() + scheme + "/" + key
}

func (cb *ConsulBackend) keyPrefix() string {
	prefix := strings.Trim(cb.config.Prefix, "/")
	if prefix == "" {
		return ""
	}

	return prefix + "/"
}
