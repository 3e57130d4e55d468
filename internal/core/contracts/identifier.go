package contracts

// ValidIdentifier 判断名称是否为语法合法的模块成员标识符
//
// 规则：首字符为字母或下划线，其余为字母、数字或下划线；
// 单独的 "_" 是通配符，不是合法标识符。
func ValidIdentifier(name string) bool {
	if name == "" || name == "_" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// ValidateIdentifier 校验标识符，非法时返回 InvalidIdentifierError
func ValidateIdentifier(name string) error {
	if !ValidIdentifier(name) {
		return &InvalidIdentifierError{Name: name}
	}
	return nil
}
