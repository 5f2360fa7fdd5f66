package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type RecipeRepo interface {
	SearchRecipes(ctx context.Context, queryText string, from, size int) ([]*RecipeES, error)
	GetLatestRecipes(ctx context.Context, from, size int) ([]*RecipeES, error)
	IndexRecipe(ctx context.Context, recipe *RecipeES, version int64) error
	DeleteRecipe(ctx context.Context, id uint64) error
}

type RecipeRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewRecipeRepo(client *elasticsearch.TypedClient) RecipeRepo {
	return &RecipeRepoImpl{client: client}
}

func (s *RecipeRepoImpl) SearchRecipes(ctx context.Context, queryText string, from, size int) ([]*RecipeES, error) {
	if from >= MaxSearchDepth {
		return []*RecipeES{}, nil
	}

	searchReq := s.client.Search().
		Index(RecipeIndex).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  queryText,
				Fields: []string{"title^2", "description", "tags"},
			},
		}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, searchReq)
}

// GetLatestRecipes 获取最新的菜谱列表
func (s *RecipeRepoImpl) GetLatestRecipes(ctx context.Context, from, size int) ([]*RecipeES, error) {
	searchReq := s.client.Search().
		Index(RecipeIndex).
		Query(&types.Query{
			MatchAll: &types.MatchAllQuery{},
		}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, searchReq)
}

func (s *RecipeRepoImpl) IndexRecipe(ctx context.Context, recipe *RecipeES, version int64) error {
	docID := strconv.FormatUint(recipe.ID, 10)

	_, err := s.client.Index(RecipeIndex).
		Id(docID).
		Document(recipe).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *RecipeRepoImpl) DeleteRecipe(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(RecipeIndex, docID).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *RecipeRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*RecipeES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*RecipeES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var recipe RecipeES
		if hit.Source_ == nil {
			continue
		}
		if err = json.Unmarshal(hit.Source_, &recipe); err != nil {
			continue
		}
		if recipe.Tags == nil {
			recipe.Tags = make([]string, 0)
		}
		results = append(results, &recipe)
	}
	return results, nil
}
