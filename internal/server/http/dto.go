package httpserver

import "checkers/internal/checkers"

// NewGameRequest 新开一局；Position 为空时用标准开局
type NewGameRequest struct {
	Position string `json:"position,omitempty"`
}

// ClickRequest 前端点了一个格子
type ClickRequest struct {
	GameID string `json:"game_id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// StateRequest 前端刷新时用 game_id 来要当前盘面
type StateRequest struct {
	GameID string `json:"game_id"`
}

// DeleteGameRequest 前端关掉对局时调用
type DeleteGameRequest struct {
	GameID string `json:"game_id"`
}

type DeleteGameResponse struct {
	GameID  string `json:"game_id"`
	Deleted bool   `json:"deleted"`
}

// ListGamesResponse 按创建时间排序的对局 ID
type ListGamesResponse struct {
	Games []string `json:"games"`
}

// AiMoveRequest 让 AI 替当前走子方走一步（直接落子）
type AiMoveRequest struct {
	GameID   string `json:"game_id"`
	MaxDepth int    `json:"max_depth"`
	TimeMs   int64  `json:"time_ms"`
}

type SquareDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type PieceDTO struct {
	ID   int    `json:"id"`
	Side string `json:"side"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	King bool   `json:"king"`
}

type MoveDTO struct {
	From     SquareDTO `json:"from"`
	To       SquareDTO `json:"to"`
	Captured []int     `json:"captured"`
}

type ScoreDTO struct {
	Light int `json:"light"`
	Dark  int `json:"dark"`
}

// StateResponse 所有接口共用的盘面快照
type StateResponse struct {
	GameID     string      `json:"game_id"`
	Position   string      `json:"position"`
	ToMove     string      `json:"to_move"`
	Cells      []PieceDTO  `json:"cells"`
	Selected   *SquareDTO  `json:"selected"`
	LegalDests []SquareDTO `json:"legal_destinations"`
	Score      ScoreDTO    `json:"score"`
	HistoryLen int         `json:"history_len"`
	Status     string      `json:"status"` // ongoing / light_wins / dark_wins / draw / blocked
}

type ClickResponse struct {
	Accepted bool `json:"accepted"`
	StateResponse
}

type AiMoveResponse struct {
	Move   *MoveDTO `json:"move"` // 没有可走的棋时为 null
	Score  int      `json:"score"`
	Depth  int      `json:"depth"`
	Nodes  int64    `json:"nodes"`
	TimeMs int64    `json:"time_ms"`
	StateResponse
}

func squareToDTO(sq checkers.Square) SquareDTO {
	return SquareDTO{Row: sq.Row(), Col: sq.Col()}
}

func squaresToDTO(sqs []checkers.Square) []SquareDTO {
	out := make([]SquareDTO, len(sqs))
	for i, sq := range sqs {
		out[i] = squareToDTO(sq)
	}
	return out
}

func moveToDTO(m checkers.Move) *MoveDTO {
	ids := make([]int, len(m.Captured))
	for i, id := range m.Captured {
		ids[i] = int(id)
	}
	return &MoveDTO{From: squareToDTO(m.From), To: squareToDTO(m.To), Captured: ids}
}

func piecesToDTO(b *checkers.Board) []PieceDTO {
	out := make([]PieceDTO, 0, checkers.MaxPieces)
	for _, side := range []checkers.Side{checkers.Light, checkers.Dark} {
		for _, p := range b.Pieces(side) {
			out = append(out, PieceDTO{
				ID:   int(p.ID),
				Side: p.Side.String(),
				Row:  p.Row,
				Col:  p.Col,
				King: p.King,
			})
		}
	}
	return out
}

// gameStatus 先看子数，再看走子方是否被堵死
func gameStatus(g *checkers.Game) string {
	if o := g.Winner(); o != checkers.Ongoing {
		return o.String()
	}
	if !g.Position().HasMoves() {
		return "blocked"
	}
	return checkers.Ongoing.String()
}

func snapshot(id string, g *checkers.Game) StateResponse {
	pos := g.Position()
	resp := StateResponse{
		GameID:     id,
		Position:   pos.Encode(),
		ToMove:     g.Turn().String(),
		Cells:      piecesToDTO(g.Board()),
		LegalDests: squaresToDTO(g.LegalDestinations()),
		Score: ScoreDTO{
			Light: g.Score(checkers.Light),
			Dark:  g.Score(checkers.Dark),
		},
		HistoryLen: len(g.History()),
		Status:     gameStatus(g),
	}
	if p, ok := g.Selected(); ok {
		resp.Selected = &SquareDTO{Row: p.Row, Col: p.Col}
	}
	return resp
}
