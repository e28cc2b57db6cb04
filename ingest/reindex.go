// Copyright 2025 Lampstand Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingest

import "context"

// Reindex rebuilds the vector index from the content store. The index is
// cleared first, then every stored sermon is re-embedded on the worker
// pool. Used after switching embedding models. Returns the number of
// sermons scheduled; blocks until embedding has drained.
func (p *Pipeline) Reindex(ctx context.Context) (int, error) {
	sermons, err := p.store.ListSermons(ctx)
	if err != nil {
		return 0, err
	}

	if err := p.index.Clear(ctx); err != nil {
		return 0, err
	}

	for _, sermon := range sermons {
		snapshot := *sermon
		p.wg.Add(1)
		if err := p.pool.Submit(func() {
			defer p.wg.Done()
			p.embedAndIndex(snapshot)
		}); err != nil {
			p.wg.Done()
			p.Wait()
			return 0, err
		}
	}

	p.Wait()

	p.logger.Info("reindex completed", "sermons", len(sermons))
	return len(sermons), nil
}
