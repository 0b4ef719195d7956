package es

import (
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/util"
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

type PostRepo interface {
	SearchPosts(ctx context.Context, keyword string, from, size int) ([]*PostES, error)
	GetPostsByChannel(ctx context.Context, channelID string, from, size int) ([]*PostES, error)
	GetPostsByTopic(ctx context.Context, topicID string, from, size int) ([]*PostES, error)
	GetLatestPosts(ctx context.Context, from, size int) ([]*PostES, error)
	IndexPost(ctx context.Context, post *PostES, version int64) error
	DeletePost(ctx context.Context, postID string) error
	UpdatePostMemberNickname(ctx context.Context, memberID string, newNickname string) error
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

// SearchPosts 关键词检索，仅返回正常状态的帖子
func (s *PostRepoImpl) SearchPosts(ctx context.Context, keyword string, from, size int) ([]*PostES, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	searchReq := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Should: []types.Query{
					{
						MultiMatch: &types.MultiMatchQuery{
							Query:  keyword,
							Fields: []string{"title^3", "content^1", "nickname^2"},
							Boost:  util.PtrFloat32(2.0),
						},
					},
					{
						MultiMatch: &types.MultiMatchQuery{
							Query:     keyword,
							Fields:    []string{"title", "content"},
							Fuzziness: util.PtrStr("AUTO"),
							Boost:     util.PtrFloat32(0.5),
						},
					},
				},
				Filter: []types.Query{
					{
						Term: map[string]types.TermQuery{
							"status": {Value: consts.ContentStatusNormal},
						},
					},
				},
				MinimumShouldMatch: 1,
			},
		}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, searchReq)
}

func (s *PostRepoImpl) GetPostsByChannel(ctx context.Context, channelID string, from, size int) ([]*PostES, error) {
	searchReq := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{
					{
						Term: map[string]types.TermQuery{
							"channel_id": {Value: channelID},
						},
					},
				},
				Filter: []types.Query{
					{
						Term: map[string]types.TermQuery{
							"status": {Value: consts.ContentStatusNormal},
						},
					},
				},
			},
		}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_time": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, searchReq)
}

func (s *PostRepoImpl) GetPostsByTopic(ctx context.Context, topicID string, from, size int) ([]*PostES, error) {
	searchReq := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{
					{
						Term: map[string]types.TermQuery{
							"topic_ids": {Value: topicID},
						},
					},
				},
				Filter: []types.Query{
					{
						Term: map[string]types.TermQuery{
							"status": {Value: consts.ContentStatusNormal},
						},
					},
				},
			},
		}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_time": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, searchReq)
}

// GetLatestPosts 获取最新的帖子列表
func (s *PostRepoImpl) GetLatestPosts(ctx context.Context, from, size int) ([]*PostES, error) {
	searchReq := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"status": {Value: consts.ContentStatusNormal},
			},
		}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_time": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, searchReq)
}

// IndexPost 写入或覆盖帖子文档，version 取帖子更新时间戳，
// 乱序到达的旧版本会触发冲突，直接跳过
func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	_, err := s.client.Index(PostIndex).
		Id(post.PostID).
		Document(post).
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

func (s *PostRepoImpl) DeletePost(ctx context.Context, postID string) error {
	_, err := s.client.Delete(PostIndex, postID).Do(ctx)

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

func (s *PostRepoImpl) UpdatePostMemberNickname(ctx context.Context, memberID string, newNickname string) error {
	nicknameJSON, _ := json.Marshal(newNickname)

	params := map[string]json.RawMessage{
		"new_nickname": json.RawMessage(nicknameJSON),
	}

	scriptSource := "ctx._source.nickname = params.new_nickname;"

	req := s.client.UpdateByQuery(PostIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"member_id": {Value: memberID},
			},
		}).
		Script(&types.Script{
			Source: &scriptSource,
			Params: params,
		})

	resp, err := req.Do(ctx)
	if err != nil {
		return err
	}

	if len(resp.Failures) != 0 {
		return errors.New("post index: update member nickname has failures")
	}

	return nil
}

func (s *PostRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*PostES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*PostES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var post PostES
		if hit.Source_ == nil {
			continue
		}
		if err = json.Unmarshal(hit.Source_, &post); err != nil {
			continue
		}
		if len(hit.Sort) > 0 {
			post.Sort = make([]interface{}, len(hit.Sort))
			for i, v := range hit.Sort {
				post.Sort[i] = v
			}
		}
		results = append(results, &post)
	}
	return results, nil
}
