package api

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"

	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"
)

// RiotClient talks to the Riot Games API and Data Dragon. Account lookups
// go to the americas routing cluster; everything else is region-scoped.
type RiotClient struct {
	apiKey string
	region string
	client *fasthttp.Client

	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo

	championMu    sync.Mutex
	championNames map[string]string
}

type RateLimitInfo struct {
	AppLimit    string `json:"app_limit"`
	AppCount    string `json:"app_count"`
	MethodLimit string `json:"method_limit"`
	MethodCount string `json:"method_count"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewRiotClient(cfg *config.Config) *RiotClient {
	return &RiotClient{
		apiKey: cfg.RiotAPIKey,
		region: cfg.RiotRegion,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *RiotClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *RiotClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if v := string(resp.Header.Peek("X-App-Rate-Limit")); v != "" {
		c.rateLimit.AppLimit = v
	}
	if v := string(resp.Header.Peek("X-App-Rate-Limit-Count")); v != "" {
		c.rateLimit.AppCount = v
	}
	if v := string(resp.Header.Peek("X-Method-Rate-Limit")); v != "" {
		c.rateLimit.MethodLimit = v
	}
	if v := string(resp.Header.Peek("X-Method-Rate-Limit-Count")); v != "" {
		c.rateLimit.MethodCount = v
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// GetAccountByRiotID resolves a Riot ID (name plus tag) to an account.
func (c *RiotClient) GetAccountByRiotID(ctx context.Context, name, tag string) (*AccountResponse, error) {
	url := fmt.Sprintf("https://americas.api.riotgames.com/riot/account/v1/accounts/by-riot-id/%s/%s", name, tag)
	return doRequest[AccountResponse](ctx, c, url)
}

// GetSummonerByPUUID resolves a puuid to the summoner identifiers used by
// the league endpoints.
func (c *RiotClient) GetSummonerByPUUID(ctx context.Context, puuid string) (*SummonerResponse, error) {
	url := fmt.Sprintf("https://%s.api.riotgames.com/lol/summoner/v4/summoners/by-puuid/%s", c.region, puuid)
	return doRequest[SummonerResponse](ctx, c, url)
}

// GetLeagueEntries returns one entry per ranked queue the summoner has
// played this season.
func (c *RiotClient) GetLeagueEntries(ctx context.Context, summonerID string) ([]LeagueEntry, error) {
	url := fmt.Sprintf("https://%s.api.riotgames.com/lol/league/v4/entries/by-summoner/%s", c.region, summonerID)
	entries, err := doRequest[[]LeagueEntry](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

// GetTopMasteries returns the player's n highest champion masteries.
func (c *RiotClient) GetTopMasteries(ctx context.Context, puuid string, n int) ([]ChampionMastery, error) {
	url := fmt.Sprintf("https://%s.api.riotgames.com/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d", c.region, puuid, n)
	masteries, err := doRequest[[]ChampionMastery](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

// GetTopChampions returns the names of the player's n most played
// champions. The mastery lookup and the champion name table fetch run
// concurrently; the table is cached after the first call.
func (c *RiotClient) GetTopChampions(ctx context.Context, puuid string, n int) ([]string, error) {
	var masteries []ChampionMastery
	var names map[string]string

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		masteries, err = c.GetTopMasteries(gCtx, puuid, n)
		return err
	})
	g.Go(func() error {
		var err error
		names, err = c.getChampionNames(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	champions := make([]string, 0, len(masteries))
	for _, m := range masteries {
		name, ok := names[fmt.Sprintf("%d", m.ChampionID)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown champion id %d", domain.ErrLookupFailed, m.ChampionID)
		}
		champions = append(champions, name)
	}
	return champions, nil
}

// getChampionNames builds the champion id to name table from Data Dragon.
func (c *RiotClient) getChampionNames(ctx context.Context) (map[string]string, error) {
	c.championMu.Lock()
	defer c.championMu.Unlock()

	if c.championNames != nil {
		return c.championNames, nil
	}

	versions, err := doRequest[[]string](ctx, c, "https://ddragon.leagueoflegends.com/api/versions.json")
	if err != nil {
		return nil, err
	}
	if len(*versions) == 0 {
		return nil, fmt.Errorf("%w: no data dragon versions", domain.ErrLookupFailed)
	}

	url := fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/data/en_US/champion.json", (*versions)[0])
	champions, err := doRequest[championDataResponse](ctx, c, url)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(champions.Data))
	for name, data := range champions.Data {
		names[data.Key] = name
	}
	c.championNames = names
	return names, nil
}

func doRequest[T any](ctx context.Context, client *RiotClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.apiKey)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}
	if err := client.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrLookupFailed, resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}
	return &result, nil
}

type AccountResponse struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type SummonerResponse struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	Puuid         string `json:"puuid"`
	SummonerLevel int    `json:"summonerLevel"`
}

type LeagueEntry struct {
	LeagueID     string `json:"leagueId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	SummonerID   string `json:"summonerId"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
	Veteran      bool   `json:"veteran"`
	FreshBlood   bool   `json:"freshBlood"`
	Inactive     bool   `json:"inactive"`
}

type ChampionMastery struct {
	Puuid          string `json:"puuid"`
	ChampionID     int64  `json:"championId"`
	ChampionLevel  int    `json:"championLevel"`
	ChampionPoints int    `json:"championPoints"`
}

type championDataResponse struct {
	Data map[string]struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}
