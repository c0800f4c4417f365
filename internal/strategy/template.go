package strategy

import (
	"fmt"
	"strings"

	"github.com/B16B1RD/cc-xp-kit/internal/textutil"
)

// RenderTemplate renders an illustrative red/green/refactor progression for
// the strategy. The output is presentation text; it is not checked for
// correctness.
//
// Parameters:
//   - s: The strategy to illustrate
//   - description: The feature description the example is named after
//
// Returns:
//   - string: The illustration
func RenderTemplate(s Strategy, description string) string {
	fn := textutil.FunctionName(description)
	name := textutil.EscapeSingleQuoted(strings.ToLower(description))

	switch s {
	case FakeIt:
		return fmt.Sprintf(`
// Step 1: 失敗するテスト (Red)
it('should %[2]s', () => {
  const result = %[1]s();
  expect(result).toBe("期待値"); // 具体的な期待値を設定
});

// Step 2: Fake It実装 (Green)
function %[1]s() {
  return "期待値"; // 完全にハードコード
}

// Step 3: 2つ目のテストで一般化へ
it('should handle different case', () => {
  const result = %[1]s("別の入力");
  expect(result).toBe("別の期待値");
});`, fn, name)

	case Triangulation:
		return fmt.Sprintf(`
// 既存のテストに追加
it('should %[2]s for edge case', () => {
  const result = %[1]s("エッジケース");
  expect(result).toBe("エッジケース期待値");
});

// 一般化された実装
function %[1]s(input) {
  // パターンが見えたので一般化
  return processInput(input);
}`, fn, name)

	default:
		return fmt.Sprintf(`
// Obvious Implementation
it('should %[2]s', () => {
  const result = %[1]s(input);
  expect(result).toBe(expectedOutput);
});

function %[1]s(input) {
  return obviousCalculation(input); // 自明な実装
}`, fn, name)
	}
}
