/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package confmon monitors the throttling-relevant parts of the cluster
// configuration. The configuration is owned elsewhere; this package only
// polls a source and caches the last good value for lock-free reads.
package confmon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// ErrConfigNotFound is returned when the configuration key does not exist
// at the source
var ErrConfigNotFound = errors.New("cluster configuration not found")

// Config holds the throttling-relevant cluster configuration
type Config struct {
	// StorageTeamSize is the number of storage replicas per data shard
	StorageTeamSize int `json:"storage_team_size"`
	// BlobStorageEnabled reports whether the external blob storage tier is active
	BlobStorageEnabled bool `json:"blob_storage_enabled"`
}

// Source loads the cluster configuration from wherever it lives
type Source interface {
	// Load fetches the current configuration
	Load(ctx context.Context) (*Config, error)
}

// EtcdSource loads the cluster configuration from a single etcd key
// holding a JSON document
type EtcdSource struct {
	client *clientv3.Client
	key    string
}

// enforce compilation error
var _ Source = (*EtcdSource)(nil)

// NewEtcdSource creates an instance of EtcdSource
func NewEtcdSource(client *clientv3.Client, key string) *EtcdSource {
	return &EtcdSource{
		client: client,
		key:    key,
	}
}

// Load fetches the current configuration
func (x *EtcdSource) Load(ctx context.Context) (*Config, error) {
	resp, err := x.client.Get(ctx, x.key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cluster configuration: %w", err)
	}
	if len(resp.Kvs) == 0 {
		return nil, ErrConfigNotFound
	}

	config := new(Config)
	if err := json.Unmarshal(resp.Kvs[0].Value, config); err != nil {
		return nil, fmt.Errorf("failed to decode cluster configuration: %w", err)
	}
	return config, nil
}

// StaticSource returns a fixed configuration. Meant for tests and
// single-node setups.
type StaticSource struct {
	config Config
}

// enforce compilation error
var _ Source = (*StaticSource)(nil)

// NewStaticSource creates an instance of StaticSource
func NewStaticSource(config Config) *StaticSource {
	return &StaticSource{config: config}
}

// Load fetches the current configuration
func (x *StaticSource) Load(context.Context) (*Config, error) {
	config := x.config
	return &config, nil
}
