package client

import (
	"context"
	"sync"

	"github.com/figdrift/figdrift/internal/constants"
	"github.com/figdrift/figdrift/pkg/figma"
)

// GetNodesBatched splits ids into size-bounded chunks, fetches each chunk
// through the full client stack and merges the per-chunk node maps. The
// first failing chunk cancels the rest and fails the whole call; a partial
// merge is never returned.
func (c *FilesClient) GetNodesBatched(ctx context.Context, fileKey string, ids []string, opts *figma.BatchOptions) (map[string]*figma.NodeResult, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	if len(ids) == 0 {
		return nil, figma.ErrNoNodeIDs
	}

	size := c.batchSize

	if opts != nil && opts.BatchSize != 0 {
		if opts.BatchSize < 0 {
			return nil, figma.ErrInvalidBatchSize
		}

		size = opts.BatchSize
	}

	chunks := chunkIDs(ids, size)

	if len(chunks) == 1 {
		resp, err := c.GetNodes(ctx, fileKey, chunks[0], nil)
		if err != nil {
			return nil, err
		}

		return resp.Nodes, nil
	}

	batchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	merged := make(map[string]*figma.NodeResult, len(ids))
	sem := make(chan struct{}, constants.BatchConcurrencyLimit)

	for _, chunk := range chunks {
		wg.Add(1)

		go func(chunk []string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-batchCtx.Done():
				return
			}

			resp, err := c.GetNodes(batchCtx, fileKey, chunk, nil)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if firstErr == nil {
					firstErr = err

					cancel()
				}

				return
			}

			for id, node := range resp.Nodes {
				merged[id] = node
			}
		}(chunk)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return merged, nil
}

// chunkIDs splits ids into slices of at most size elements, preserving
// order.
func chunkIDs(ids []string, size int) [][]string {
	chunks := make([][]string, 0, (len(ids)+size-1)/size)

	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}

		chunks = append(chunks, ids[start:end])
	}

	return chunks
}
