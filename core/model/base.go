package model

// BaseEstimator は全てのステージの基底となる構造体。
// オンライン学習では「学習済み」とは一件以上の観測を取り込んだ状態を指す。
type BaseEstimator struct {
	seen int64
}

// IsFitted はステージが一件以上の観測を取り込んだかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.seen > 0
}

// NSeen は取り込んだ観測数を返す
func (e *BaseEstimator) NSeen() int64 {
	return e.seen
}

// MarkSeen は観測数を一つ進める。各ステージの更新チャネルが
// 観測を取り込むたびに一度だけ呼ぶ。
func (e *BaseEstimator) MarkSeen() {
	e.seen++
}

// Reset はステージを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.seen = 0
}
