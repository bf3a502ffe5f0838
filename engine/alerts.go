package engine

import (
	"fmt"

	"github.com/sixoracle/sentinel/scorestore"
)

type OwnerAlert struct {
	Title   string
	Content string
}

// labels shown to the service owner, keyed by detection type
var alertTypeLabels = map[string]string{
	TypeBotDetected:    "🤖 Bot検出",
	TypeRateLimitAbuse: "⚠️ レート制限連続違反",
	TypeHighUsage:      "📊 異常な利用パターン",
}

func alertTitle(detectionType string) string {
	label, ok := alertTypeLabels[detectionType]
	if !ok {
		label = detectionType
	}
	return "【不正利用検出】" + label
}

func botDetectedAlert(userID string, score int, triggerMessage string) OwnerAlert {
	content := fmt.Sprintf(`自動化されたメッセージパターンを検出しました。

【検出タイプ】
%s

【ユーザー情報】
ユーザーID: %s

【疑惑スコア】
%d / %d

【直近のメッセージ】
%s

このアカウントは自動的にブロックされました。`,
		alertTypeLabels[TypeBotDetected], userID, score, scorestore.MaxScore, triggerMessage)
	return OwnerAlert{
		Title:   alertTitle(TypeBotDetected),
		Content: content,
	}
}

func rateAbuseAlert(userID string, violationCount int) OwnerAlert {
	content := fmt.Sprintf(`レート制限の連続違反を検出しました。

【検出タイプ】
%s

【ユーザー情報】
ユーザーID: %s

【違反回数】
%d回（5分以内）

このアカウントは自動的にブロックされました。`,
		alertTypeLabels[TypeRateLimitAbuse], userID, violationCount)
	return OwnerAlert{
		Title:   alertTitle(TypeRateLimitAbuse),
		Content: content,
	}
}
