package decoder

// Comments decodes a page of comment threads. The first page arrives as a
// reload command with the comments header, later pages as append actions.
func Comments(raw []byte) (*Result, error) {
	return continuation(ShapeComments, raw)
}

// Replies decodes a page of replies to one comment.
func Replies(raw []byte) (*Result, error) {
	return continuation(ShapeReplies, raw)
}
