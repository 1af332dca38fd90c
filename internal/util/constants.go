package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeZip         = "application/zip"
	MimeText        = "text/plain"
	MimeOctetStream = "application/octet-stream"

	MaxResourceSize = 20 << 20
)

// AllowedResourceTypes 测评模板附件允许的类型
var AllowedResourceTypes = []string{MimePDF, MimeImage, MimeZip, MimeText}

const (
	CacheKeyJobPrefix = "jobs:"
	CacheKeyJobList   = "jobs:list:"
	CacheKeyJobDetail = "jobs:detail:"

	APIVersion     = "1.0.0"
	APIServiceName = "Job Assessment Platform API"
)
