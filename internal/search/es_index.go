package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	infraES "vidtube/internal/infra/elasticsearch"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ESIndex 基于全局 ES 客户端的 DocumentIndex 实现
type ESIndex struct {
	index string
}

func NewESIndex(index string) *ESIndex {
	return &ESIndex{index: index}
}

func (e *ESIndex) Put(ctx context.Context, id string, body []byte) error {
	resp, err := infraES.Index(ctx, e.index, id, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return checkResponse(resp, "index")
}

// Remove 删除文档，文档不存在视为成功
func (e *ESIndex) Remove(ctx context.Context, id string) error {
	resp, err := infraES.Delete(ctx, e.index, id)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil
	}
	return checkResponse(resp, "delete")
}

func (e *ESIndex) Bulk(ctx context.Context, body []byte) error {
	resp, err := infraES.Bulk(ctx, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return fmt.Errorf("bulk error: %s", resp.String())
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if result.Errors {
		return fmt.Errorf("bulk request had item errors")
	}
	return nil
}

func (e *ESIndex) Name() string {
	return e.index
}

func checkResponse(resp *esapi.Response, op string) error {
	defer resp.Body.Close()
	if resp.IsError() {
		return fmt.Errorf("%s error: %s", op, resp.String())
	}
	return nil
}
