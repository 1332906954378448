package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/fadedpez/eldorado/pkg/entities"
)

// ElasticsearchConfig holds configuration options for the audit sink
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// DefaultElasticsearchConfig returns a default configuration
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "eldorado",
	}
}

const transactionsMapping = `{
	"mappings": {
		"properties": {
			"id":          { "type": "keyword" },
			"user_id":     { "type": "keyword" },
			"coin_delta":  { "type": "long" },
			"gem_delta":   { "type": "long" },
			"reason":      { "type": "text" },
			"timestamp":   { "type": "date" },
			"coins_after": { "type": "long" },
			"gems_after":  { "type": "long" }
		}
	}
}`

// ElasticsearchSink indexes ledger transactions into Elasticsearch for
// audit search. Indexing is best-effort from the engine's point of view:
// the durable audit trail lives in the profile repository, the sink is a
// queryable copy.
type ElasticsearchSink struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticsearchSink creates an audit sink and ensures the index exists
func NewElasticsearchSink(config *ElasticsearchConfig) (*ElasticsearchSink, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	prefix := config.IndexPrefix
	if prefix == "" {
		prefix = "eldorado"
	}

	sink := &ElasticsearchSink{
		client: client,
		index:  prefix + "_transactions",
	}

	if err := sink.ensureIndex(context.Background()); err != nil {
		return nil, err
	}

	return sink, nil
}

// IndexTransaction indexes a single ledger transaction
func (s *ElasticsearchSink) IndexTransaction(ctx context.Context, tx *entities.Transaction) error {
	jsonData, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("error marshaling transaction: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(jsonData),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(tx.ID),
	)
	if err != nil {
		return fmt.Errorf("error indexing transaction: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing transaction: %s", res.String())
	}

	return nil
}

// ensureIndex creates the transactions index if it does not exist
func (s *ElasticsearchSink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists(
		[]string{s.index},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("error checking index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	createRes, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(transactionsMapping)),
	)
	if err != nil {
		return fmt.Errorf("error creating index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("error creating index: %s", createRes.String())
	}

	return nil
}
