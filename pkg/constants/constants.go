package constants

const (
	ServiceName  = "giggles-api"
	ConsumerName = "giggles-consumer"

	// 评论
	MaxCommentLength = 500 // 按字符(rune)计
	CommentRateKey   = "comment:%s"

	// 分页
	DefaultCommentsLimit = 20
	DefaultLikesLimit    = 50
	DefaultImagesLimit   = 50

	// 对象存储前缀
	VideoKeyPrefix = "uploads"
	ImageKeyPrefix = "images"
)
